// Package repository implements attendee and admin persistence. Postgres
// stores use pgx directly (no ORM); the in-memory stores back tests and the
// memory driver.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a unique key is already taken.
var ErrAlreadyExists = errors.New("already exists")

// AttendeeStore is the keyed attendee record store.
type AttendeeStore interface {
	// Create assigns ID and timestamps and inserts the record.
	Create(ctx context.Context, a *model.Attendee) error
	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, a *model.Attendee) error
	GetByID(ctx context.Context, id string) (*model.Attendee, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.Attendee, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Attendee, error)
	ListByLocation(ctx context.Context, loc model.EventLocation) ([]model.Attendee, error)
	// SearchByName matches term case-insensitively against name, surname
	// and patronymic.
	SearchByName(ctx context.Context, term string) ([]model.Attendee, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

// AdminStore is the credential store for administrators.
type AdminStore interface {
	Create(ctx context.Context, a *model.Admin) error
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
