package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeSlotRepo struct {
	counts  map[domain.SlotStatus]int
	slots   []*domain.Slot
	blocked int

	err error
}

func (r *fakeSlotRepo) CountByStatus(_ context.Context, _ int64, _ time.Time) (map[domain.SlotStatus]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.counts, nil
}

func (r *fakeSlotRepo) GetByBranchAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Slot, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.slots, nil
}

func (r *fakeSlotRepo) BlockDate(_ context.Context, _ int64, _ time.Time) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.blocked, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func TestService_GetBayStatistics(t *testing.T) {
	repo := &fakeSlotRepo{counts: map[domain.SlotStatus]int{
		domain.SlotAvailable: 5,
		domain.SlotReserved:  1,
		domain.SlotBooked:    3,
		domain.SlotBlocked:   2,
	}}
	svc := NewService(repo, nopLogger{})

	stats, err := svc.GetBayStatistics(context.Background(), 10, testDate)
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.BayID)
	assert.Equal(t, 5, stats.AvailableSlots)
	assert.Equal(t, 1, stats.ReservedSlots)
	assert.Equal(t, 3, stats.BookedSlots)
	assert.Equal(t, 2, stats.BlockedSlots)
	assert.Equal(t, 11, stats.TotalSlots)
}

func TestService_GetBayStatistics_NoSchedule(t *testing.T) {
	// Нет расписания — нулевые счётчики, не ошибка
	repo := &fakeSlotRepo{counts: map[domain.SlotStatus]int{}}
	svc := NewService(repo, nopLogger{})

	stats, err := svc.GetBayStatistics(context.Background(), 10, testDate)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSlots)
	assert.Equal(t, 0, stats.AvailableSlots)
}

func TestService_GetBayStatistics_Validation(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	_, err := svc.GetBayStatistics(context.Background(), 0, testDate)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetBayStatistics(context.Background(), 10, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetDaySchedule(t *testing.T) {
	slots := []*domain.Slot{
		{ID: 1, BranchID: 1, BayID: 10, StartTime: types.TimeString("08:00"), EndTime: types.TimeString("08:30"), Status: domain.SlotAvailable},
		{ID: 2, BranchID: 1, BayID: 10, StartTime: types.TimeString("08:30"), EndTime: types.TimeString("09:00"), Status: domain.SlotBooked},
	}
	svc := NewService(&fakeSlotRepo{slots: slots}, nopLogger{})

	got, err := svc.GetDaySchedule(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.Equal(t, slots, got)
}

func TestService_GetDaySchedule_RepositoryError(t *testing.T) {
	svc := NewService(&fakeSlotRepo{err: errors.New("db down")}, nopLogger{})

	_, err := svc.GetDaySchedule(context.Background(), 1, testDate)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_BlockDate(t *testing.T) {
	svc := NewService(&fakeSlotRepo{blocked: 6}, nopLogger{})

	blocked, err := svc.BlockDate(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.Equal(t, 6, blocked)
}

func TestService_BlockDate_Validation(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	_, err := svc.BlockDate(context.Background(), 0, testDate)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
