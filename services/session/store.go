// Package session holds ephemeral per-user conversation state. Sessions are
// TTL-evicted and never written to durable storage.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"imovelmatch/models"
)

// ErrNotFound is returned when a session id is unknown or already evicted.
var ErrNotFound = errors.New("session not found")

// Store is the session state surface shared by the chat adapters.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, id string) error
}

// New creates a fresh session with a random identifier.
func New(userName string) *models.Session {
	return &models.Session{
		ID:       uuid.New().String(),
		UserName: userName,
	}
}
