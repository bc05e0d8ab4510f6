package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	rulesRepo "soothely/database/repository/rules"
	"soothely/models"
)

// Validation errors surfaced to the admin API.
var (
	ErrRuleOverlap     = errors.New("pricing rule overlaps an existing rule for the same weekday")
	ErrInvalidRule     = errors.New("invalid rule definition")
	ErrInvalidBusiness = errors.New("invalid business rules")
)

// Service owns the admin lifecycle of business, pricing and duration rules.
// Every write invalidates the shared snapshot so availability and pricing
// pick the change up on the next request.
type Service struct {
	repo     rulesRepo.RulesRepository
	snapshot *SnapshotCache
}

// NewService constructs a rules Service.
func NewService(repo rulesRepo.RulesRepository, snapshot *SnapshotCache) *Service {
	return &Service{repo: repo, snapshot: snapshot}
}

// Snapshot exposes the cached snapshot getter for sibling services.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	return s.snapshot.Get(ctx)
}

// GetBusinessRules returns the current business rules, or nil when unset.
func (s *Service) GetBusinessRules() (*models.BusinessRules, error) {
	return s.repo.GetBusinessRules()
}

// UpdateBusinessRules validates and persists the business rules document.
func (s *Service) UpdateBusinessRules(ctx context.Context, rules *models.BusinessRules) error {
	if rules.OpeningHour < 0 || rules.ClosingHour > 24 || rules.OpeningHour >= rules.ClosingHour {
		return fmt.Errorf("%w: opening hour must precede closing hour within 0..24", ErrInvalidBusiness)
	}
	if rules.DefaultBufferBeforeMinutes < 0 || rules.DefaultBufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffers cannot be negative", ErrInvalidBusiness)
	}
	if rules.MinAdvanceHours < 0 {
		return fmt.Errorf("%w: minimum advance cannot be negative", ErrInvalidBusiness)
	}
	if rules.DaytimeHourlyRate <= 0 || rules.AfterhoursHourlyRate <= 0 {
		return fmt.Errorf("%w: hourly rates must be positive", ErrInvalidBusiness)
	}

	if err := s.repo.UpsertBusinessRules(rules); err != nil {
		return err
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

// ListPricingRules returns all time-window pricing rules.
func (s *Service) ListPricingRules() ([]models.PricingRule, error) {
	return s.repo.ListPricingRules()
}

// CreatePricingRule validates the rule against every existing rule for the
// same weekday and inserts it. Overlapping windows are rejected outright so
// first-match pricing never depends on document order.
func (s *Service) CreatePricingRule(ctx context.Context, rule *models.PricingRule) error {
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be 0..6", ErrInvalidRule)
	}
	if rule.StartMinute < 0 || rule.EndMinute > 24*60 || rule.StartMinute >= rule.EndMinute {
		return fmt.Errorf("%w: window must be a non-empty range within the day", ErrInvalidRule)
	}

	existing, err := s.repo.ListPricingRules()
	if err != nil {
		return err
	}
	for _, other := range existing {
		if rule.Overlaps(other) {
			return fmt.Errorf("%w: conflicts with rule %s", ErrRuleOverlap, other.ID)
		}
	}

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if err := s.repo.CreatePricingRule(rule); err != nil {
		return err
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

// DeletePricingRule removes a pricing rule.
func (s *Service) DeletePricingRule(ctx context.Context, id string) error {
	if err := s.repo.DeletePricingRule(id); err != nil {
		return err
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

// ListDurationRules returns all duration uplift rules.
func (s *Service) ListDurationRules() ([]models.DurationRule, error) {
	return s.repo.ListDurationRules()
}

// CreateDurationRule inserts a duration uplift rule. Durations are matched
// exactly, so two rules for the same duration are ambiguous and rejected.
func (s *Service) CreateDurationRule(ctx context.Context, rule *models.DurationRule) error {
	if rule.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRule)
	}

	existing, err := s.repo.ListDurationRules()
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.DurationMinutes == rule.DurationMinutes {
			return fmt.Errorf("%w: duplicate duration %d", ErrInvalidRule, rule.DurationMinutes)
		}
	}

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if err := s.repo.CreateDurationRule(rule); err != nil {
		return err
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

// DeleteDurationRule removes a duration uplift rule.
func (s *Service) DeleteDurationRule(ctx context.Context, id string) error {
	if err := s.repo.DeleteDurationRule(id); err != nil {
		return err
	}
	s.snapshot.Invalidate(ctx)
	return nil
}
