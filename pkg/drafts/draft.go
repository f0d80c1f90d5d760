package drafts

import (
	"context"
	"slices"
	"time"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

// Draft is the persisted progress of a form session.
type Draft struct {
	ID        string             `json:"id"`
	FormID    string             `json:"form_id"`
	Step      string             `json:"step"`
	Visited   []string           `json:"visited,omitempty"`
	Data      validator.FormData `json:"data"`
	Touched   []string           `json:"touched,omitempty"`
	Submitted bool               `json:"submitted"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	d.Data = d.Data.Clone()
	d.Visited = slices.Clone(d.Visited)
	d.Touched = slices.Clone(d.Touched)
	return d
}

// Store persists drafts by ID. Load and Delete report ErrDraftNotFound for
// unknown IDs.
type Store interface {
	Save(ctx context.Context, d Draft) error
	Load(ctx context.Context, id string) (Draft, error)
	Delete(ctx context.Context, id string) error
}

// Healthcheck is a liveness probe for a store backend.
type Healthcheck func(ctx context.Context) error

func validateDraft(d Draft) error {
	if d.ID == "" {
		return ErrEmptyID
	}
	if d.FormID == "" {
		return ErrEmptyFormID
	}
	return nil
}
