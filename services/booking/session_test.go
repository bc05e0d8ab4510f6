package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soothely/models"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client), mr
}

func sampleSession() *models.BookingSession {
	return &models.BookingSession{
		Request: models.ServiceRequest{
			Location:        models.GeoPoint{Lat: -33.8688, Lng: 151.2093},
			ServiceID:       "relaxation",
			Date:            "2026-09-02",
			DurationMinutes: 60,
		},
		MatchedProviders: []models.ProviderDTO{
			{ID: "p1", Name: "Aria", HourlyRate: 90},
		},
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := sampleSession()
	require.NoError(t, store.Create(ctx, session))
	require.NotEmpty(t, session.ID)

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Request, got.Request)
	assert.Equal(t, session.MatchedProviders, got.MatchedProviders)

	got.SelectedProvider = "p1"
	got.Slots = []int{540, 600}
	require.NoError(t, store.Update(ctx, got))

	again, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", again.SelectedProvider)
	assert.Equal(t, []int{540, 600}, again.Slots)
}

func TestSessionExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	session := sampleSession()
	require.NoError(t, store.Create(ctx, session))

	mr.FastForward(11 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	session := sampleSession()
	require.NoError(t, store.Create(ctx, session))

	mr.FastForward(8 * time.Minute)
	require.NoError(t, store.Update(ctx, session))
	mr.FastForward(8 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	assert.NoError(t, err, "update should have pushed the expiry out")
}

func TestDeleteRemovesSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := sampleSession()
	require.NoError(t, store.Create(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
