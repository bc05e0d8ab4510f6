package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	commitmentRepo "soothely/database/repository/commitment"
	providerRepo "soothely/database/repository/provider"
	"soothely/models"
	"soothely/services/availability"
	"soothely/services/engine"
	"soothely/services/rules"
	"soothely/services/tasks"
	"soothely/utils"
)

// ErrSlotTaken is re-exported so callers handle the race without importing
// the repository package.
var ErrSlotTaken = commitmentRepo.ErrSlotTaken

// Booking flow errors.
var (
	ErrNoSelection     = errors.New("no provider selected for this session")
	ErrProviderUnknown = errors.New("provider is not among the session's matches")
	ErrSlotNotOffered  = errors.New("requested start time is not an offered slot")
)

// Confirmation is the outcome of a confirmed booking: the persisted
// commitment plus the price and payout breakdowns computed at confirmation
// time.
type Confirmation struct {
	Commitment models.Commitment  `json:"commitment"`
	Price      models.PriceResult `json:"price"`
	Fee        models.FeeResult   `json:"fee"`
}

// Service drives the staged search-select-confirm booking flow. Session
// state lives in Redis between steps; the confirmation itself is an atomic
// Mongo insert guarded by the reservation index.
type Service struct {
	sessions     *SessionStore
	availability *availability.Service
	providers    providerRepo.ProviderRepository
	commitments  commitmentRepo.CommitmentRepository
	rules        *rules.SnapshotCache
	queue        *asynq.Client
}

// NewService constructs a booking Service. queue may be nil in tests, in
// which case reminders are skipped.
func NewService(
	sessions *SessionStore,
	avail *availability.Service,
	providers providerRepo.ProviderRepository,
	commitments commitmentRepo.CommitmentRepository,
	rulesCache *rules.SnapshotCache,
	queue *asynq.Client,
) *Service {
	return &Service{
		sessions:     sessions,
		availability: avail,
		providers:    providers,
		commitments:  commitments,
		rules:        rulesCache,
		queue:        queue,
	}
}

// StartSession runs the availability search and stages the matches in a new
// session for the select and confirm steps.
func (s *Service) StartSession(ctx context.Context, req models.ServiceRequest, now time.Time) (*models.BookingSession, []availability.ProviderAvailability, error) {
	matches, err := s.availability.Search(ctx, req, now)
	if err != nil {
		return nil, nil, err
	}

	session := &models.BookingSession{Request: req}
	for _, m := range matches {
		session.MatchedProviders = append(session.MatchedProviders, m.Provider)
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, matches, nil
}

// SelectProvider pins the session to one matched provider and refreshes
// that provider's open slots.
func (s *Service) SelectProvider(ctx context.Context, sessionID, providerID string, now time.Time) (*models.BookingSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !matchedInSession(session, providerID) {
		return nil, ErrProviderUnknown
	}

	slots, err := s.availability.SlotsFor(ctx, providerID, session.Request.Date, session.Request.DurationMinutes, now)
	if err != nil {
		return nil, err
	}

	session.SelectedProvider = providerID
	session.Slots = slots
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm reserves the chosen slot. Pricing and payout are computed from the
// same rules snapshot; the insert either claims the slot or fails with
// ErrSlotTaken when a concurrent booking won the race, in which case the
// session's slot list is refreshed so the customer can pick again.
func (s *Service) Confirm(ctx context.Context, sessionID, customerID string, startMinute int, now time.Time) (*Confirmation, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedProvider == "" {
		return nil, ErrNoSelection
	}
	if !offered(session.Slots, startMinute) {
		return nil, ErrSlotNotOffered
	}

	snap, err := s.rules.Get(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Business.IsZero() {
		return nil, engine.ErrConfigMissing
	}
	provider, err := s.providers.GetByID(session.SelectedProvider)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", session.Request.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", availability.ErrInvalidRequest, session.Request.Date)
	}

	req := session.Request
	start := date.Add(time.Duration(startMinute) * time.Minute)
	price := engine.Price(engine.PriceInput{
		BasePrice:       provider.HourlyRate * float64(req.DurationMinutes) / 60,
		DurationMinutes: req.DurationMinutes,
		Start:           start,
		DurationRules:   snap.DurationRules,
		PricingRules:    snap.PricingRules,
		Discount:        req.Discount,
		GiftCard:        req.GiftCard,
	})
	fee, err := engine.TherapistFee(snap.Business, date, startMinute, req.DurationMinutes, 1, models.ArrangementSplit)
	if err != nil {
		return nil, err
	}

	commitment := &models.Commitment{
		ID:              uuid.New().String(),
		ProviderID:      provider.ID,
		CustomerID:      customerID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		StartMinute:     startMinute,
		DurationMinutes: req.DurationMinutes,
		Price:           price.FinalPrice,
		ProviderFee:     fee.Fee,
	}
	if err := s.commitments.Reserve(commitment); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.refreshSlots(ctx, session, now)
		}
		return nil, err
	}

	if s.queue != nil {
		if err := tasks.ScheduleReminder(s.queue, *commitment); err != nil {
			utils.GetLogger().Error("failed to schedule reminder",
				zap.String("commitmentId", commitment.ID), zap.Error(err))
		}
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to drop confirmed session",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	return &Confirmation{Commitment: *commitment, Price: price, Fee: fee}, nil
}

// CancelCommitment releases a reserved slot.
func (s *Service) CancelCommitment(id string) error {
	return s.commitments.Cancel(id)
}

func (s *Service) refreshSlots(ctx context.Context, session *models.BookingSession, now time.Time) {
	slots, err := s.availability.SlotsFor(ctx, session.SelectedProvider, session.Request.Date, session.Request.DurationMinutes, now)
	if err != nil {
		return
	}
	session.Slots = slots
	if err := s.sessions.Update(ctx, session); err != nil {
		utils.GetLogger().Warn("failed to refresh session slots",
			zap.String("sessionId", session.ID), zap.Error(err))
	}
}

func matchedInSession(session *models.BookingSession, providerID string) bool {
	for _, m := range session.MatchedProviders {
		if m.ID == providerID {
			return true
		}
	}
	return false
}

func offered(slots []int, start int) bool {
	for _, s := range slots {
		if s == start {
			return true
		}
	}
	return false
}
