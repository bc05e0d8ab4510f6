package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	quoteRepo "soothely/database/repository/quote"
	"soothely/models"
	"soothely/services/engine"
	"soothely/services/rules"
)

// Lifecycle errors.
var (
	ErrInvalidTransition = errors.New("quote is not in the required state for this operation")
	ErrScheduleShortfall = errors.New("schedule does not cover the requested sessions")
)

// Service drives the quote lifecycle: draft, validated, priced, submitted.
// Any schedule edit drops the quote back to draft so stale validation or
// pricing can never be submitted.
type Service struct {
	repo  quoteRepo.QuoteRepository
	rules *rules.SnapshotCache
}

// NewService constructs a quote Service.
func NewService(repo quoteRepo.QuoteRepository, rulesCache *rules.SnapshotCache) *Service {
	return &Service{repo: repo, rules: rulesCache}
}

// Create stores a new draft quote.
func (s *Service) Create(quote *models.Quote) (*models.Quote, error) {
	if quote.NumberOfSessions <= 0 || quote.SessionDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: sessions and session duration must be positive", ErrInvalidTransition)
	}
	if quote.BasePrice <= 0 {
		return nil, fmt.Errorf("%w: base price must be positive", ErrInvalidTransition)
	}

	quote.ID = uuid.New().String()
	quote.Status = models.QuoteDraft
	quote.EstimateLow, quote.EstimateHigh, quote.EstimateActual = 0, 0, 0
	if err := s.repo.Create(quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// Get returns a quote by ID.
func (s *Service) Get(id string) (*models.Quote, error) {
	return s.repo.GetByID(id)
}

// UpdateSchedule replaces the quote's day schedule and session parameters.
// The quote drops back to draft regardless of its previous state.
func (s *Service) UpdateSchedule(id string, days []models.QuoteDay, sessions, sessionDurationMinutes int) (*models.Quote, error) {
	quote, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote.Status == models.QuoteSubmitted {
		return nil, fmt.Errorf("%w: submitted quotes are immutable", ErrInvalidTransition)
	}

	quote.Days = days
	if sessions > 0 {
		quote.NumberOfSessions = sessions
	}
	if sessionDurationMinutes > 0 {
		quote.SessionDurationMinutes = sessionDurationMinutes
	}
	quote.Status = models.QuoteDraft
	quote.EstimateLow, quote.EstimateHigh, quote.EstimateActual = 0, 0, 0

	if err := s.repo.Update(quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// Validate reconciles the schedule against the requested workload and
// advances a draft to validated on success.
func (s *Service) Validate(id string) (*models.Quote, engine.ScheduleCheck, error) {
	quote, err := s.repo.GetByID(id)
	if err != nil {
		return nil, engine.ScheduleCheck{}, err
	}
	if quote.Status == models.QuoteSubmitted {
		return nil, engine.ScheduleCheck{}, fmt.Errorf("%w: quote already submitted", ErrInvalidTransition)
	}

	check, err := engine.ValidateSchedule(quote.Days, quote.NumberOfSessions, quote.SessionDurationMinutes)
	if err != nil {
		return nil, engine.ScheduleCheck{}, err
	}
	if !check.OK {
		return quote, check, ErrScheduleShortfall
	}

	quote.Status = models.QuoteValidated
	if err := s.repo.Update(quote); err != nil {
		return nil, engine.ScheduleCheck{}, err
	}
	return quote, check, nil
}

// Price computes the estimate band for a validated quote and advances it to
// priced. The billable workload is the requested sessions times the
// per-session duration, not the raw schedule span.
func (s *Service) Price(ctx context.Context, id string) (*models.Quote, error) {
	quote, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote.Status != models.QuoteValidated && quote.Status != models.QuotePriced {
		return nil, fmt.Errorf("%w: quote must be validated before pricing", ErrInvalidTransition)
	}

	snap, err := s.rules.Get(ctx)
	if err != nil {
		return nil, err
	}

	workload := quote.NumberOfSessions * quote.SessionDurationMinutes
	low, high, actual, err := engine.QuoteEstimate(quote.BasePrice, workload, quote.Days, snap.PricingRules)
	if err != nil {
		return nil, err
	}

	quote.EstimateLow = low
	quote.EstimateHigh = high
	quote.EstimateActual = actual
	quote.Status = models.QuotePriced
	if err := s.repo.Update(quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// Submit finalizes a priced quote.
func (s *Service) Submit(id string) (*models.Quote, error) {
	quote, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote.Status != models.QuotePriced {
		return nil, fmt.Errorf("%w: quote must be priced before submission", ErrInvalidTransition)
	}

	quote.Status = models.QuoteSubmitted
	if err := s.repo.Update(quote); err != nil {
		return nil, err
	}
	return quote, nil
}
