package quote

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soothely/models"
	"soothely/services/engine"
	"soothely/services/rules"
)

// fakeQuoteRepo is an in-memory QuoteRepository.
type fakeQuoteRepo struct {
	quotes map[string]models.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[string]models.Quote)}
}

func (f *fakeQuoteRepo) Create(q *models.Quote) error {
	f.quotes[q.ID] = *q
	return nil
}

func (f *fakeQuoteRepo) GetByID(id string) (*models.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, fmt.Errorf("quote with id %s not found", id)
	}
	out := q
	return &out, nil
}

func (f *fakeQuoteRepo) Update(q *models.Quote) error {
	if _, ok := f.quotes[q.ID]; !ok {
		return fmt.Errorf("quote with id %s not found", q.ID)
	}
	f.quotes[q.ID] = *q
	return nil
}

// fakeRulesRepo serves a fixed rule set for snapshot loading.
type fakeRulesRepo struct {
	pricing []models.PricingRule
}

func (f *fakeRulesRepo) GetBusinessRules() (*models.BusinessRules, error) {
	return &models.BusinessRules{
		OpeningHour: 8, ClosingHour: 18,
		DaytimeHourlyRate: 90, AfterhoursHourlyRate: 120,
	}, nil
}
func (f *fakeRulesRepo) UpsertBusinessRules(*models.BusinessRules) error { return nil }
func (f *fakeRulesRepo) ListPricingRules() ([]models.PricingRule, error) {
	return f.pricing, nil
}
func (f *fakeRulesRepo) CreatePricingRule(*models.PricingRule) error      { return nil }
func (f *fakeRulesRepo) DeletePricingRule(string) error                   { return nil }
func (f *fakeRulesRepo) ListDurationRules() ([]models.DurationRule, error) { return nil, nil }
func (f *fakeRulesRepo) CreateDurationRule(*models.DurationRule) error    { return nil }
func (f *fakeRulesRepo) DeleteDurationRule(string) error                  { return nil }

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rulesStore := &fakeRulesRepo{
		pricing: []models.PricingRule{
			{ID: "sat", DayOfWeek: 6, StartMinute: 0, EndMinute: 24 * 60, UpliftPercent: 20},
		},
	}
	return NewService(newFakeQuoteRepo(), rules.NewSnapshotCache(rulesStore, client))
}

// 2026-09-04 is a Friday, 2026-09-05 a Saturday.
func coveringQuote() *models.Quote {
	return &models.Quote{
		CustomerID:             "c1",
		NumberOfSessions:       2,
		SessionDurationMinutes: 120,
		BasePrice:              100,
		Days: []models.QuoteDay{
			{Date: "2026-09-04", StartMinute: 540, FinishMinute: 660, DayNumber: 1},
			{Date: "2026-09-05", StartMinute: 540, FinishMinute: 660, DayNumber: 2},
		},
	}
}

func TestCreateStartsAsDraft(t *testing.T) {
	svc := newTestService(t)

	q, err := svc.Create(coveringQuote())
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, models.QuoteDraft, q.Status)
}

func TestCreateRejectsNonPositiveInputs(t *testing.T) {
	svc := newTestService(t)

	q := coveringQuote()
	q.NumberOfSessions = 0
	_, err := svc.Create(q)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	q = coveringQuote()
	q.BasePrice = 0
	_, err = svc.Create(q)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidateAdvancesToValidated(t *testing.T) {
	svc := newTestService(t)
	q, err := svc.Create(coveringQuote())
	require.NoError(t, err)

	validated, check, err := svc.Validate(q.ID)
	require.NoError(t, err)
	assert.True(t, check.OK)
	assert.Equal(t, 240, check.ScheduleMinutes)
	assert.Equal(t, 240, check.RequirementMinutes)
	assert.Equal(t, models.QuoteValidated, validated.Status)
}

func TestValidateShortfallStaysDraft(t *testing.T) {
	svc := newTestService(t)
	input := coveringQuote()
	input.NumberOfSessions = 3 // needs 360 minutes, schedule has 240
	q, err := svc.Create(input)
	require.NoError(t, err)

	_, check, err := svc.Validate(q.ID)
	assert.ErrorIs(t, err, ErrScheduleShortfall)
	assert.False(t, check.OK)

	got, err := svc.Get(q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteDraft, got.Status)
}

func TestPriceRequiresValidation(t *testing.T) {
	svc := newTestService(t)
	q, err := svc.Create(coveringQuote())
	require.NoError(t, err)

	_, err = svc.Price(context.Background(), q.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPriceComputesEstimateBand(t *testing.T) {
	svc := newTestService(t)
	q, err := svc.Create(coveringQuote())
	require.NoError(t, err)
	_, _, err = svc.Validate(q.ID)
	require.NoError(t, err)

	priced, err := svc.Price(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotePriced, priced.Status)

	// 240 min at $100/h is $400; the Friday contributes x1.0 and the
	// Saturday x1.2, averaging to x1.1.
	assert.InDelta(t, 440.0, priced.EstimateActual, 1e-9)
	assert.Equal(t, 396.0, priced.EstimateLow)
	assert.Equal(t, 484.0, priced.EstimateHigh)
}

func TestSubmitRequiresPricing(t *testing.T) {
	svc := newTestService(t)
	q, err := svc.Create(coveringQuote())
	require.NoError(t, err)
	_, _, err = svc.Validate(q.ID)
	require.NoError(t, err)

	_, err = svc.Submit(q.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Price(context.Background(), q.ID)
	require.NoError(t, err)

	submitted, err := svc.Submit(q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteSubmitted, submitted.Status)
}

func TestScheduleEditResetsToDraft(t *testing.T) {
	svc := newTestService(t)
	q, err := svc.Create(coveringQuote())
	require.NoError(t, err)
	_, _, err = svc.Validate(q.ID)
	require.NoError(t, err)
	_, err = svc.Price(context.Background(), q.ID)
	require.NoError(t, err)

	edited, err := svc.UpdateSchedule(q.ID, []models.QuoteDay{
		{Date: "2026-09-07", StartMinute: 540, FinishMinute: 780, DayNumber: 1},
	}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteDraft, edited.Status)
	assert.Zero(t, edited.EstimateActual)
	assert.Zero(t, edited.EstimateLow)
	assert.Zero(t, edited.EstimateHigh)
}

func TestSubmittedQuoteIsImmutable(t *testing.T) {
	svc := newTestService(t)
	q, err := svc.Create(coveringQuote())
	require.NoError(t, err)
	_, _, err = svc.Validate(q.ID)
	require.NoError(t, err)
	_, err = svc.Price(context.Background(), q.ID)
	require.NoError(t, err)
	_, err = svc.Submit(q.ID)
	require.NoError(t, err)

	_, err = svc.UpdateSchedule(q.ID, nil, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _, err = svc.Validate(q.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidateRejectsOutOfOrderDates(t *testing.T) {
	svc := newTestService(t)
	input := coveringQuote()
	input.Days = []models.QuoteDay{
		{Date: "2026-09-05", StartMinute: 540, FinishMinute: 660, DayNumber: 1},
		{Date: "2026-09-04", StartMinute: 540, FinishMinute: 660, DayNumber: 2},
	}
	q, err := svc.Create(input)
	require.NoError(t, err)

	_, _, err = svc.Validate(q.ID)
	assert.ErrorIs(t, err, engine.ErrNonSequentialDates)
}
