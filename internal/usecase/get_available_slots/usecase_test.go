package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (r *fakeSlotRepo) GetByBranchAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Slot, error) {
	return r.slots, nil
}

type fakeBranchClient struct {
	branch *branchservice.Branch
	err    error
}

func (c *fakeBranchClient) GetBranch(_ context.Context, _ int64) (*branchservice.Branch, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.branch, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
)

// daySlots создает слоты бокса с 08:00 по 30 минут; индексы из booked
// помечаются занятыми
func daySlots(startID, bayID int64, count int, booked ...int) []*domain.Slot {
	bookedSet := make(map[int]bool, len(booked))
	for _, i := range booked {
		bookedSet[i] = true
	}

	slots := make([]*domain.Slot, count)
	start := types.TimeString("08:00")
	for i := 0; i < count; i++ {
		end, _ := start.AddMinutes(30)
		status := domain.SlotAvailable
		if bookedSet[i] {
			status = domain.SlotBooked
		}
		slots[i] = &domain.Slot{
			ID:        startID + int64(i),
			BranchID:  1,
			BayID:     bayID,
			SlotDate:  testDate,
			StartTime: start,
			EndTime:   end,
			Status:    status,
		}
		start = end
	}
	return slots
}

func newTestUseCase(repo *fakeSlotRepo, client *fakeBranchClient) *UseCase {
	uc := NewUseCase(repo, client, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func utcBranch() *branchservice.Branch {
	return &branchservice.Branch{ID: 1, Timezone: "UTC"}
}

func TestUseCase_Execute_SingleSlotOptions(t *testing.T) {
	// Один бокс, 4 слота 08:00-10:00, слот 08:30-09:00 занят
	repo := &fakeSlotRepo{slots: daySlots(1, 10, 4, 1)}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: utcBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMinutes)
	require.Len(t, resp.Starts, 3)
	assert.Equal(t, types.TimeString("08:00"), resp.Starts[0].StartTime)
	assert.Equal(t, types.TimeString("09:00"), resp.Starts[1].StartTime)
	assert.Equal(t, types.TimeString("09:30"), resp.Starts[2].StartTime)
}

func TestUseCase_Execute_RunMustBeContiguous(t *testing.T) {
	// Занят слот 09:00-09:30: для 60 минут остается только ран 08:00-09:00
	repo := &fakeSlotRepo{slots: daySlots(1, 10, 4, 2)}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: utcBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate, DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	require.Len(t, resp.Starts, 1)
	assert.Equal(t, types.TimeString("08:00"), resp.Starts[0].StartTime)
	assert.Equal(t, types.TimeString("09:00"), resp.Starts[0].EndTime)
}

func TestUseCase_Execute_MergesBays(t *testing.T) {
	// Два бокса; во втором занят первый слот
	slots := append(daySlots(1, 10, 2), daySlots(11, 20, 2, 0)...)
	repo := &fakeSlotRepo{slots: slots}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: utcBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Starts, 2)
	assert.Equal(t, types.TimeString("08:00"), resp.Starts[0].StartTime)
	assert.Equal(t, 1, resp.Starts[0].AvailableBays)
	assert.Equal(t, types.TimeString("08:30"), resp.Starts[1].StartTime)
	assert.Equal(t, 2, resp.Starts[1].AvailableBays)
}

func TestUseCase_Execute_DurationRoundsUpToSlots(t *testing.T) {
	repo := &fakeSlotRepo{slots: daySlots(1, 10, 4)}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: utcBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate, DurationMinutes: 45})
	require.NoError(t, err)

	// 45 минут округляются до двух 30-минутных слотов
	assert.Equal(t, 60, resp.DurationMinutes)
	require.Len(t, resp.Starts, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Starts[2].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Starts[2].EndTime)
}

func TestUseCase_Execute_NoScheduleIsEmptyNotError(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{branch: utcBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Starts)
}

func TestUseCase_Execute_PastDateIsEmpty(t *testing.T) {
	repo := &fakeSlotRepo{slots: daySlots(1, 10, 4)}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: utcBranch()})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID: 1, Date: testNow.AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Starts)
}

func TestUseCase_Execute_TodayDropsElapsedStarts(t *testing.T) {
	repo := &fakeSlotRepo{slots: daySlots(1, 10, 4)}
	// Сейчас 08:45: варианты 08:00 и 08:30 уже прошли
	uc := NewUseCase(repo, &fakeBranchClient{branch: utcBranch()}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 15, 8, 45, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Starts, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Starts[0].StartTime)
}

func TestUseCase_Execute_BranchNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{err: branchservice.ErrBranchNotFound})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{branch: utcBranch()})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BranchID: 1, Date: testDate, DurationMinutes: domain.MaxBookingDurationMinutes + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
