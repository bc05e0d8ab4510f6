package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"soothely/models"
)

// sessionTTL bounds how long a customer can sit between search and
// confirmation before the staged state expires.
const sessionTTL = 10 * time.Minute

// ErrSessionNotFound is returned when a booking session has expired or
// never existed.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// SessionStore keeps in-flight booking sessions in Redis, keyed by a
// generated session ID. Every write refreshes the TTL.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wraps the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id string) string {
	return "booking:session:" + id
}

// Create stores a new session and assigns it an ID.
func (s *SessionStore) Create(ctx context.Context, session *models.BookingSession) error {
	session.ID = uuid.New().String()
	return s.put(ctx, session)
}

// Get loads a session by ID.
func (s *SessionStore) Get(ctx context.Context, id string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}

	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode booking session: %w", err)
	}
	return &session, nil
}

// Update rewrites an existing session, refreshing its TTL.
func (s *SessionStore) Update(ctx context.Context, session *models.BookingSession) error {
	if session.ID == "" {
		return ErrSessionNotFound
	}
	return s.put(ctx, session)
}

// Delete removes a session, typically after confirmation.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

func (s *SessionStore) put(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}
