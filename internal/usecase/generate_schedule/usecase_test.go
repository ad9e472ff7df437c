package generate_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type fakeSlotRepo struct {
	generated []int64
	created   []*domain.Slot

	createErr error
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) (int, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.created = append(r.created, slots...)
	return len(slots), nil
}

func (r *fakeSlotRepo) GetGeneratedBayIDs(_ context.Context, _ int64, _ time.Time) ([]int64, error) {
	return r.generated, nil
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

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	// Среда
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
)

func openAllWeek(open, close string) branchservice.WeekSchedule {
	day := branchservice.DaySchedule{IsOpen: true, OpenTime: ptr.Ptr(open), CloseTime: ptr.Ptr(close)}
	return branchservice.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func testBranch() *branchservice.Branch {
	return &branchservice.Branch{
		ID:                  1,
		Name:                "Центральный",
		Timezone:            "UTC",
		SlotDurationMinutes: 30,
		WorkingHours:        openAllWeek("08:00", "10:00"),
		Bays: []branchservice.Bay{
			{ID: 10, Name: "Бокс 1"},
			{ID: 20, Name: "Бокс 2"},
		},
	}
}

func newTestUseCase(repo *fakeSlotRepo, client *fakeBranchClient) *UseCase {
	uc := NewUseCase(repo, client, fakeTxManager{}, NopMetrics{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func TestUseCase_Execute_GeneratesDaySchedule(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: testBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	// 08:00-10:00 по 30 минут = 4 слота на бокс, боксов два
	assert.Equal(t, 8, resp.SlotsCreated)
	assert.Equal(t, 2, resp.BaysTotal)
	assert.Equal(t, 0, resp.BaysSkipped)
	require.Len(t, repo.created, 8)

	first := repo.created[0]
	assert.Equal(t, int64(1), first.BranchID)
	assert.Equal(t, int64(10), first.BayID)
	assert.Equal(t, "08:00", string(first.StartTime))
	assert.Equal(t, "08:30", string(first.EndTime))
	assert.Equal(t, domain.SlotAvailable, first.Status)

	last := repo.created[3]
	assert.Equal(t, "09:30", string(last.StartTime))
	assert.Equal(t, "10:00", string(last.EndTime))
}

func TestUseCase_Execute_DropsTrailingRemainder(t *testing.T) {
	branch := testBranch()
	branch.WorkingHours = openAllWeek("08:00", "09:45")
	branch.Bays = branch.Bays[:1]
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: branch})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	// Хвост 09:30-09:45 короче слота и не генерируется
	assert.Equal(t, 3, resp.SlotsCreated)
	assert.Equal(t, "09:30", string(repo.created[2].EndTime))
}

func TestUseCase_Execute_SkipsAlreadyGeneratedBays(t *testing.T) {
	repo := &fakeSlotRepo{generated: []int64{10}}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: testBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	// Бокс 10 уже сгенерирован: слоты создаются только для бокса 20
	assert.Equal(t, 1, resp.BaysSkipped)
	assert.Equal(t, 4, resp.SlotsCreated)
	for _, s := range repo.created {
		assert.Equal(t, int64(20), s.BayID)
	}
}

func TestUseCase_Execute_AllBaysGenerated(t *testing.T) {
	repo := &fakeSlotRepo{generated: []int64{10, 20}}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: testBranch()})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.BaysSkipped)
	assert.Equal(t, 0, resp.SlotsCreated)
	assert.Empty(t, repo.created)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{branch: testBranch()})

	yesterday := testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: yesterday})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_TodayIsAllowed(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: testBranch()})

	today := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: today})
	assert.NoError(t, err)
}

func TestUseCase_Execute_BranchClosed(t *testing.T) {
	branch := testBranch()
	branch.WorkingHours.Wednesday = branchservice.DaySchedule{IsOpen: false}
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{branch: branch})

	// 2025-10-15 — среда
	_, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrBranchClosed)
}

func TestUseCase_Execute_BranchNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{err: branchservice.ErrBranchNotFound})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestUseCase_Execute_NoBays(t *testing.T) {
	branch := testBranch()
	branch.Bays = nil
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{branch: branch})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrNoBays)
}

func TestUseCase_Execute_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *branchservice.Branch)
	}{
		{
			name:   "slot duration too small",
			mutate: func(b *branchservice.Branch) { b.SlotDurationMinutes = 3 },
		},
		{
			name:   "slot duration too large",
			mutate: func(b *branchservice.Branch) { b.SlotDurationMinutes = 500 },
		},
		{
			name: "open day without hours",
			mutate: func(b *branchservice.Branch) {
				b.WorkingHours.Wednesday = branchservice.DaySchedule{IsOpen: true}
			},
		},
		{
			name: "open not before close",
			mutate: func(b *branchservice.Branch) {
				b.WorkingHours.Wednesday = branchservice.DaySchedule{
					IsOpen: true, OpenTime: ptr.Ptr("20:00"), CloseTime: ptr.Ptr("08:00"),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			branch := testBranch()
			tt.mutate(branch)
			uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{branch: branch})

			_, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBranchClient{branch: testBranch()})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BranchID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_CreateBatchFailure(t *testing.T) {
	repo := &fakeSlotRepo{createErr: errors.New("db down")}
	uc := newTestUseCase(repo, &fakeBranchClient{branch: testBranch()})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestBuildDaySlots(t *testing.T) {
	slots, err := buildDaySlots(1, 10, testDate, "08:00", "10:00", 30)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, "08:00", string(slots[0].StartTime))
	assert.Equal(t, "10:00", string(slots[3].EndTime))
	assert.True(t, slots[0].SlotDate.Equal(testDate))
}

func TestBuildDaySlots_SingleSlotDay(t *testing.T) {
	slots, err := buildDaySlots(1, 10, testDate, "08:00", "08:30", 30)
	require.NoError(t, err)
	require.Len(t, slots, 1)
}

func TestBuildDaySlots_InvalidOpenTime(t *testing.T) {
	_, err := buildDaySlots(1, 10, testDate, "25:00", "10:00", 30)
	assert.Error(t, err)
}
