package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	storage "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelErr error
	updateErr error
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.BranchID != filter.BranchID {
			continue
		}
		if filter.BayID != nil && b.BayID != *filter.BayID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.bookings[id].Status = status
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	b := r.bookings[id]
	b.Status = status
	b.CancellationReason = &reason
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	b.CancelledAt = &now
	return nil
}

type fakeSlotRepo struct {
	released []int64
}

func (r *fakeSlotRepo) ReleaseByBooking(_ context.Context, bookingID int64) (int, error) {
	r.released = append(r.released, bookingID)
	return 2, nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		Number:      "b2e6c3d4-0000-0000-0000-000000000000",
		CustomerID:  7,
		VehicleID:   15,
		BranchID:    1,
		BayID:       10,
		SlotIDs:     []int64{1, 2},
		BookingDate: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:00"),
		Status:      status,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetCustomerBookings(t *testing.T) {
	confirmed := testBooking(1, domain.StatusConfirmed)
	completed := testBooking(2, domain.StatusCompleted)
	other := testBooking(3, domain.StatusConfirmed)
	other.CustomerID = 99
	repo := newFakeBookingRepo(confirmed, completed, other)
	svc := NewService(repo, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	status := string(domain.StatusCompleted)
	resp, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 7, Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestService_GetCustomerBookings_Validation(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{CustomerID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "unknown"
	_, err = svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 7, Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_GetBranchBookings(t *testing.T) {
	active := testBooking(1, domain.StatusConfirmed)
	cancelled := testBooking(2, domain.StatusCancelledByCustomer)
	otherBay := testBooking(3, domain.StatusConfirmed)
	otherBay.BayID = 20
	repo := newFakeBookingRepo(active, cancelled, otherBay)
	svc := NewService(repo, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	// Отмененные по умолчанию скрыты
	resp, err := svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{BranchID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
		BranchID: 1, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)

	bayID := int64(20)
	resp, err = svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
		BranchID: 1, BayID: &bayID,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(3), resp.Bookings[0].ID)
}

func TestService_GetBranchBookings_Validation(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{BranchID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	start := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, err = svc.GetBranchBookings(context.Background(), &models.GetBranchBookingsRequest{
		BranchID: 1, StartDate: &start, EndDate: &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel_ByCustomer(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	slotRepo := &fakeSlotRepo{}
	txManager := &fakeTxManager{}
	svc := NewService(repo, slotRepo, txManager, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		RequestedBy:        7, // совпадает с CustomerID
		CancellationReason: "передумал",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelledByCustomer), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "передумал", *resp.CancellationReason)

	// Отмена и освобождение слотов идут одной транзакцией
	assert.Equal(t, 1, txManager.calls)
	assert.Equal(t, []int64{1}, slotRepo.released)
}

func TestService_Cancel_ByBranch(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		RequestedBy:        500, // менеджер филиала
		CancellationReason: "бокс на ремонте",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByBranch), resp.Status)
}

func TestService_Cancel_NotCancellable(t *testing.T) {
	tests := []domain.BookingStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
		domain.StatusNoShow,
	}

	for _, status := range tests {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, status))
			slotRepo := &fakeSlotRepo{}
			svc := NewService(repo, slotRepo, &fakeTxManager{}, nopLogger{})

			_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequestedBy: 7})
			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Empty(t, slotRepo.released)
		})
	}
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

	_, err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{RequestedBy: 7})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus_AllowedTransitions(t *testing.T) {
	tests := []struct {
		from domain.BookingStatus
		to   domain.BookingStatus
	}{
		{domain.StatusPending, domain.StatusConfirmed},
		{domain.StatusConfirmed, domain.StatusInProgress},
		{domain.StatusConfirmed, domain.StatusNoShow},
		{domain.StatusInProgress, domain.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, tt.from))
			svc := NewService(repo, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				RequestedBy: 500, Status: string(tt.to),
			})
			require.NoError(t, err)
			assert.Equal(t, string(tt.to), resp.Status)
		})
	}
}

func TestService_UpdateStatus_ForbiddenTransitions(t *testing.T) {
	tests := []struct {
		from domain.BookingStatus
		to   domain.BookingStatus
	}{
		{domain.StatusPending, domain.StatusInProgress},
		{domain.StatusPending, domain.StatusCompleted},
		{domain.StatusConfirmed, domain.StatusCompleted},
		{domain.StatusCompleted, domain.StatusInProgress},
		{domain.StatusNoShow, domain.StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			repo := newFakeBookingRepo(testBooking(1, tt.from))
			svc := NewService(repo, &fakeSlotRepo{}, &fakeTxManager{}, nopLogger{})

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				RequestedBy: 500, Status: string(tt.to),
			})
			assert.ErrorIs(t, err, ErrInvalidStatus)
		})
	}
}

func TestService_UpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	slotRepo := &fakeSlotRepo{}
	svc := NewService(repo, slotRepo, &fakeTxManager{}, nopLogger{})

	for _, status := range []domain.BookingStatus{
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledByBranch,
	} {
		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			RequestedBy: 7, Status: string(status),
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
	assert.Empty(t, slotRepo.released)
}

func TestService_UpdateStatus_NoShowKeepsSlots(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	slotRepo := &fakeSlotRepo{}
	svc := NewService(repo, slotRepo, &fakeTxManager{}, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		RequestedBy: 500, Status: string(domain.StatusNoShow),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	assert.Empty(t, slotRepo.released)
}
