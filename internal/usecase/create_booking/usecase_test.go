package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
	schedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	createErr error
	deleteErr error

	created []*domain.Booking
	deleted []int64
	nextID  int64
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	saved := *booking
	saved.ID = r.nextID
	saved.CreatedAt = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt
	r.created = append(r.created, &saved)
	return &saved, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeAllocator struct {
	run *domain.ReservedRun

	// Очередь ошибок Reserve: пустая очередь означает успех
	reserveErrs []error
	confirmErr  error
	releaseErr  error

	reserveCalls int
	confirmed    []int64
	released     []string
}

func (a *fakeAllocator) Reserve(_ context.Context, _ *allocation.ReserveRequest) (*domain.ReservedRun, error) {
	a.reserveCalls++
	if len(a.reserveErrs) > 0 {
		err := a.reserveErrs[0]
		a.reserveErrs = a.reserveErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return a.run, nil
}

func (a *fakeAllocator) Confirm(_ context.Context, token string, bookingID int64) error {
	if a.confirmErr != nil {
		return a.confirmErr
	}
	a.confirmed = append(a.confirmed, bookingID)
	return nil
}

func (a *fakeAllocator) Release(_ context.Context, token string) error {
	if a.releaseErr != nil {
		return a.releaseErr
	}
	a.released = append(a.released, token)
	return nil
}

type fakeGenerator struct {
	err   error
	calls int
}

func (g *fakeGenerator) Execute(_ context.Context, req *schedule.Request) (*schedule.Response, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &schedule.Response{BranchID: req.BranchID, Date: req.Date, BaysTotal: 1, SlotsCreated: 4}, nil
}

type fakeBranchClient struct {
	branch    *branchservice.Branch
	branchErr error

	services   map[int64]*branchservice.ServiceItem
	serviceErr error
}

func (c *fakeBranchClient) GetBranch(_ context.Context, _ int64) (*branchservice.Branch, error) {
	if c.branchErr != nil {
		return nil, c.branchErr
	}
	return c.branch, nil
}

func (c *fakeBranchClient) GetService(_ context.Context, _, serviceID int64) (*branchservice.ServiceItem, error) {
	if c.serviceErr != nil {
		return nil, c.serviceErr
	}
	svc, ok := c.services[serviceID]
	if !ok {
		return nil, branchservice.ErrServiceNotFound
	}
	return svc, nil
}

type fakeCustomerClient struct {
	customerErr error
	vehicleErr  error
}

func (c *fakeCustomerClient) EnsureCustomer(_ context.Context, req *customerservice.EnsureCustomerRequest) (*customerservice.Customer, error) {
	if c.customerErr != nil {
		return nil, c.customerErr
	}
	return &customerservice.Customer{ID: 7, Name: req.Name, Phone: req.Phone}, nil
}

func (c *fakeCustomerClient) EnsureVehicle(_ context.Context, customerID int64, req *customerservice.EnsureVehicleRequest) (*customerservice.Vehicle, error) {
	if c.vehicleErr != nil {
		return nil, c.vehicleErr
	}
	return &customerservice.Vehicle{
		ID: 15, CustomerID: customerID,
		LicensePlate: req.LicensePlate, Brand: req.Brand, Model: req.Model,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookingRepo    *fakeBookingRepo
	allocator      *fakeAllocator
	generator      *fakeGenerator
	branchClient   *fakeBranchClient
	customerClient *fakeCustomerClient
	uc             *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo: &fakeBookingRepo{},
		allocator: &fakeAllocator{
			run: &domain.ReservedRun{
				Token:     "test-token",
				BranchID:  1,
				BayID:     10,
				SlotIDs:   []int64{1, 2},
				Date:      testDate,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("11:00"),
			},
		},
		generator: &fakeGenerator{},
		branchClient: &fakeBranchClient{
			branch: &branchservice.Branch{ID: 1, Timezone: "UTC", SlotDurationMinutes: 30},
			services: map[int64]*branchservice.ServiceItem{
				101: {ID: 101, Name: "Замена масла", DurationMinutes: 30, Price: ptr.Ptr(2500.0)},
				102: {ID: 102, Name: "Диагностика", DurationMinutes: 30, Price: ptr.Ptr(1500.0)},
			},
		},
		customerClient: &fakeCustomerClient{},
	}
	f.uc = NewUseCase(f.bookingRepo, f.allocator, f.generator, f.branchClient, f.customerClient, nopLogger{})
	f.uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)}
	return f
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

func validRequest() *Request {
	return &Request{
		BranchID:   1,
		Date:       testDate,
		ServiceIDs: []int64{101, 102},
		Customer:   CustomerInput{Name: "Иван", Phone: "+79001234567"},
		Vehicle:    VehicleInput{LicensePlate: "А123БВ77", Brand: ptr.Ptr("Lada"), Model: ptr.Ptr("Vesta")},
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.NotEmpty(t, resp.Number)
	assert.Equal(t, int64(7), resp.CustomerID)
	assert.Equal(t, int64(15), resp.VehicleID)
	assert.Equal(t, int64(10), resp.BayID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Замена масла, Диагностика", resp.ServiceSummary)
	assert.Equal(t, 4000.0, resp.TotalPrice)

	// Резервирование подтверждено с ID сохраненного бронирования
	require.Len(t, f.allocator.confirmed, 1)
	assert.Equal(t, resp.ID, f.allocator.confirmed[0])
	assert.Empty(t, f.allocator.released)

	require.Len(t, f.bookingRepo.created, 1)
	booking := f.bookingRepo.created[0]
	assert.Equal(t, []int64{1, 2}, booking.SlotIDs)
	assert.Equal(t, []int64{101, 102}, booking.ServiceIDs)
	require.NotNil(t, booking.VehiclePlate)
	assert.Equal(t, "А123БВ77", *booking.VehiclePlate)
}

func TestUseCase_Execute_LazyGeneration(t *testing.T) {
	f := newFixture()
	// Первая попытка — расписания нет, после генерации вторая успешна
	f.allocator.reserveErrs = []error{allocation.ErrNoSchedule, nil}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, 1, f.generator.calls)
	assert.Equal(t, 2, f.allocator.reserveCalls)
}

func TestUseCase_Execute_LazyGenerationStillNoCapacity(t *testing.T) {
	f := newFixture()
	f.allocator.reserveErrs = []error{allocation.ErrNoSchedule, allocation.ErrNoCapacity}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestUseCase_Execute_LazyGenerationBranchClosed(t *testing.T) {
	f := newFixture()
	f.allocator.reserveErrs = []error{allocation.ErrNoSchedule}
	f.generator.err = schedule.ErrBranchClosed

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBranchClosed)
	assert.Equal(t, 1, f.allocator.reserveCalls)
}

func TestUseCase_Execute_NoCapacity(t *testing.T) {
	f := newFixture()
	f.allocator.reserveErrs = []error{allocation.ErrNoCapacity}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoCapacity)
	assert.Empty(t, f.bookingRepo.created)
}

func TestUseCase_Execute_PersistFailureReleasesHold(t *testing.T) {
	f := newFixture()
	f.bookingRepo.createErr = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	// Компенсация: холд освобожден, подтверждения не было
	require.Len(t, f.allocator.released, 1)
	assert.Equal(t, "test-token", f.allocator.released[0])
	assert.Empty(t, f.allocator.confirmed)
}

func TestUseCase_Execute_CompensationFailed(t *testing.T) {
	f := newFixture()
	f.bookingRepo.createErr = errors.New("db down")
	f.allocator.releaseErr = errors.New("release failed")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCompensationFailed)
}

func TestUseCase_Execute_ConfirmFailureDeletesBooking(t *testing.T) {
	f := newFixture()
	f.allocator.confirmErr = allocation.ErrReservationNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Бронирование без слотов удаляется
	require.Len(t, f.bookingRepo.deleted, 1)
	assert.Equal(t, int64(1), f.bookingRepo.deleted[0])
}

func TestUseCase_Execute_BranchNotFound(t *testing.T) {
	f := newFixture()
	f.branchClient.branchErr = branchservice.ErrBranchNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestUseCase_Execute_ServiceNotFound(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ServiceIDs = []int64{101, 999}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_CustomerRejected(t *testing.T) {
	f := newFixture()
	f.customerClient.customerErr = customerservice.ErrInvalidPayload

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCustomerRejected)
	assert.Equal(t, 0, f.allocator.reserveCalls)
}

func TestUseCase_Execute_VehicleRejected(t *testing.T) {
	f := newFixture()
	f.customerClient.vehicleErr = customerservice.ErrInvalidPayload

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCustomerRejected)
}

func TestUseCase_Execute_ZeroDurationServices(t *testing.T) {
	f := newFixture()
	f.branchClient.services[101].DurationMinutes = 0
	f.branchClient.services[102].DurationMinutes = 0

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero branch", func(r *Request) { r.BranchID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"non-positive service id", func(r *Request) { r.ServiceIDs = []int64{0} }},
		{"blank phone", func(r *Request) { r.Customer.Phone = "  " }},
		{"blank plate", func(r *Request) { r.Vehicle.LicensePlate = "" }},
		{"bad preferred start", func(r *Request) {
			bad := types.TimeString("9am")
			r.PreferredStart = &bad
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, f.allocator.reserveCalls)
		})
	}
}
