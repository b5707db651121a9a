// internal/session/store.go
package session

import (
	"context"

	"applicant-forms/internal/application/form"
)

// Store keeps in-progress form states by session id. Get returns a
// SESSION_NOT_FOUND error for unknown or expired ids.
type Store interface {
	Name() string
	Get(ctx context.Context, id string) (form.State, error)
	Put(ctx context.Context, id string, state form.State) error
	Delete(ctx context.Context, id string) error
}
