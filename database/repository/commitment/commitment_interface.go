package commitmentRepo

import (
	"errors"

	"soothely/models"
)

// ErrSlotTaken is returned when another booking already holds the same
// provider/date/start-time combination. The unique index on the commitments
// collection makes the reservation atomic: two concurrent confirmations
// cannot both succeed.
var ErrSlotTaken = errors.New("slot already reserved")

// CommitmentRepository defines methods for commitment data access.
type CommitmentRepository interface {
	// GetByID retrieves a commitment by its unique ID.
	GetByID(id string) (*models.Commitment, error)
	// GetByProviderAndDate retrieves a provider's commitments for one calendar date.
	GetByProviderAndDate(providerID, date string) ([]models.Commitment, error)
	// Reserve atomically inserts a commitment, failing with ErrSlotTaken
	// when the slot is already held.
	Reserve(commitment *models.Commitment) error
	// Cancel marks a commitment cancelled, releasing its slot.
	Cancel(id string) error
}
