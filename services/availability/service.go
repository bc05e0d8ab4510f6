package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	commitmentRepo "soothely/database/repository/commitment"
	providerRepo "soothely/database/repository/provider"
	"soothely/models"
	"soothely/services/engine"
	"soothely/services/rules"
	"soothely/utils"
)

// ErrInvalidRequest flags a search request the service cannot act on.
var ErrInvalidRequest = errors.New("invalid availability request")

// ProviderAvailability pairs a matched therapist with their open start
// times for the requested day.
type ProviderAvailability struct {
	Provider  models.ProviderDTO `json:"provider"`
	Slots     []int              `json:"slots"`
	SlotTimes []string           `json:"slotTimes"`
}

// Service answers "who can come to this address, and when". It trims the
// candidate set in Mongo, geo-filters in process, and fans out the per-day
// slot computation across the matched providers.
type Service struct {
	providers   providerRepo.ProviderRepository
	commitments commitmentRepo.CommitmentRepository
	rules       *rules.SnapshotCache
}

// NewService constructs an availability Service.
func NewService(
	providers providerRepo.ProviderRepository,
	commitments commitmentRepo.CommitmentRepository,
	rulesCache *rules.SnapshotCache,
) *Service {
	return &Service{providers: providers, commitments: commitments, rules: rulesCache}
}

// Search returns every active provider covering the request location,
// together with their bookable start times for the requested date. Providers
// with no working hours that day are dropped silently; a missing
// BusinessRules document aborts the whole search.
func (s *Service) Search(ctx context.Context, req models.ServiceRequest, now time.Time) ([]ProviderAvailability, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRequest, req.Date)
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
	}

	snap, err := s.rules.Get(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Business.IsZero() {
		return nil, engine.ErrConfigMissing
	}

	candidates, err := s.providers.Search(providerRepo.ProviderSearchCriteria{
		ServiceID:  req.ServiceID,
		Gender:     req.GenderFilter,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}

	matched := make([]models.Provider, 0, len(candidates))
	for _, p := range candidates {
		if engine.IsServedBy(req.Location, p) {
			matched = append(matched, p)
		}
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []ProviderAvailability
	)
	for _, p := range matched {
		wg.Add(1)
		go func(p models.Provider) {
			defer wg.Done()

			commitments, err := s.commitments.GetByProviderAndDate(p.ID, req.Date)
			if err != nil {
				utils.GetLogger().Error("failed to load commitments",
					zap.String("providerId", p.ID), zap.Error(err))
				return
			}

			slots, err := engine.AvailableSlots(
				snap.Business, p.WindowFor(date.Weekday()), commitments,
				date, req.DurationMinutes, now)
			if err != nil {
				// Off that day: not an error from the customer's view.
				if !errors.Is(err, engine.ErrNoWorkingHours) {
					utils.GetLogger().Error("slot computation failed",
						zap.String("providerId", p.ID), zap.Error(err))
				}
				return
			}
			if len(slots) == 0 {
				return
			}

			mu.Lock()
			results = append(results, ProviderAvailability{
				Provider:  toDTO(p, req.Location),
				Slots:     slots,
				SlotTimes: clockTimes(slots),
			})
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Provider.ProximityKm < results[j].Provider.ProximityKm
	})
	return results, nil
}

// SlotsFor computes the open start times for one specific provider and date.
func (s *Service) SlotsFor(ctx context.Context, providerID, date string, durationMinutes int, now time.Time) ([]int, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRequest, date)
	}

	snap, err := s.rules.Get(ctx)
	if err != nil {
		return nil, err
	}
	provider, err := s.providers.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	commitments, err := s.commitments.GetByProviderAndDate(providerID, date)
	if err != nil {
		return nil, err
	}

	return engine.AvailableSlots(snap.Business, provider.WindowFor(day.Weekday()), commitments, day, durationMinutes, now)
}

func toDTO(p models.Provider, from models.GeoPoint) models.ProviderDTO {
	dto := models.ProviderDTO{
		ID:         p.ID,
		Name:       p.Name,
		Gender:     p.Gender,
		HourlyRate: p.HourlyRate,
		ServiceIDs: p.ServiceIDs,
	}
	if p.Location != nil {
		dto.ProximityKm = engine.HaversineKm(from, *p.Location)
	}
	return dto
}

func clockTimes(slots []int) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = models.MinutesToClock(s)
	}
	return times
}
