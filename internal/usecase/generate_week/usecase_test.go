package generate_week

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	schedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

type fakeGenerator struct {
	// Ответ или ошибка по дате запроса (ключ — "2006-01-02")
	responses map[string]*schedule.Response
	errs      map[string]error

	requests []*schedule.Request
}

func (g *fakeGenerator) Execute(_ context.Context, req *schedule.Request) (*schedule.Response, error) {
	g.requests = append(g.requests, req)
	key := req.Date.Format("2006-01-02")
	if err, ok := g.errs[key]; ok {
		return nil, err
	}
	if resp, ok := g.responses[key]; ok {
		return resp, nil
	}
	return &schedule.Response{
		BranchID: req.BranchID, Date: req.Date,
		BaysTotal: 2, SlotsCreated: 8,
	}, nil
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

var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestUseCase(gen *fakeGenerator, client *fakeBranchClient) *UseCase {
	uc := NewUseCase(gen, client, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func TestUseCase_Execute_GeneratesSevenDaysFromTomorrow(t *testing.T) {
	gen := &fakeGenerator{}
	uc := newTestUseCase(gen, &fakeBranchClient{branch: &branchservice.Branch{ID: 1, Timezone: "UTC"}})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	require.Len(t, gen.requests, 7)
	assert.Equal(t, "2025-10-15", gen.requests[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-10-21", gen.requests[6].Date.Format("2006-01-02"))
	assert.Equal(t, 7*8, resp.SlotsCreated)
	for _, day := range resp.Days {
		assert.Equal(t, OutcomeGenerated, day.Outcome)
	}
}

func TestUseCase_Execute_TomorrowInBranchTimezone(t *testing.T) {
	gen := &fakeGenerator{}
	// 2025-10-14 12:00 UTC — в Окленде уже 2025-10-15, значит завтра там 16-е
	uc := newTestUseCase(gen, &fakeBranchClient{branch: &branchservice.Branch{ID: 1, Timezone: "Pacific/Auckland"}})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-16", gen.requests[0].Date.Format("2006-01-02"))
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	gen := &fakeGenerator{errs: map[string]error{"2025-10-18": schedule.ErrBranchClosed}}
	uc := newTestUseCase(gen, &fakeBranchClient{branch: &branchservice.Branch{ID: 1, Timezone: "UTC"}})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1})
	require.NoError(t, err)

	assert.Equal(t, OutcomeClosed, resp.Days[3].Outcome)
	assert.Equal(t, 0, resp.Days[3].SlotsCreated)
	assert.Equal(t, 6*8, resp.SlotsCreated)
}

func TestUseCase_Execute_FailureDoesNotStopRemainingDays(t *testing.T) {
	gen := &fakeGenerator{errs: map[string]error{"2025-10-16": schedule.ErrInternal}}
	uc := newTestUseCase(gen, &fakeBranchClient{branch: &branchservice.Branch{ID: 1, Timezone: "UTC"}})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1})
	require.NoError(t, err)

	require.Len(t, gen.requests, 7)
	assert.Equal(t, OutcomeFailed, resp.Days[1].Outcome)
	assert.NotEmpty(t, resp.Days[1].Error)
	assert.Equal(t, OutcomeGenerated, resp.Days[2].Outcome)
	assert.Equal(t, 6*8, resp.SlotsCreated)
}

func TestUseCase_Execute_AlreadyGeneratedDayIsSkipped(t *testing.T) {
	gen := &fakeGenerator{responses: map[string]*schedule.Response{
		"2025-10-15": {BranchID: 1, BaysTotal: 2, BaysSkipped: 2, SlotsCreated: 0},
	}}
	uc := newTestUseCase(gen, &fakeBranchClient{branch: &branchservice.Branch{ID: 1, Timezone: "UTC"}})

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 1})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Days[0].Outcome)
}

func TestUseCase_Execute_BranchNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeGenerator{}, &fakeBranchClient{err: branchservice.ErrBranchNotFound})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 99})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeGenerator{}, &fakeBranchClient{})

	_, err := uc.Execute(context.Background(), &Request{BranchID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
