// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/metrics"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/projection"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/rules"
)

var (
	// ErrInvalidRequest marks request-shape problems found before the role
	// rules run, such as a blank name.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmptyBatch is returned by DeleteMany for an empty id list.
	ErrEmptyBatch = errors.New("id list must not be empty")
)

const maxNameLength = 100

// AttendeeService orchestrates attendee registration and lookups.
type AttendeeService struct {
	store     repository.AttendeeStore
	projector *projection.Projector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewAttendeeService constructs an AttendeeService with its dependencies.
// A nil metrics value disables instrumentation.
func NewAttendeeService(
	store repository.AttendeeStore,
	projector *projection.Projector,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AttendeeService {
	return &AttendeeService{store: store, projector: projector, metrics: m, logger: logger}
}

// Create validates the request against the role rules and stores it.
func (s *AttendeeService) Create(ctx context.Context, req model.AttendeeRequest) (*model.AttendeeView, error) {
	if req.Role == nil {
		return nil, fmt.Errorf("%w: role is required", ErrInvalidRequest)
	}
	var a model.Attendee
	req.MergeInto(&a)
	if err := s.check(&a); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, &a); err != nil {
		return nil, fmt.Errorf("create attendee: %w", err)
	}
	s.metrics.IncCreated()
	s.logger.InfoContext(ctx, "attendee created", "attendee_id", a.ID, "role", a.Role)

	view := s.projector.Project(a)
	return &view, nil
}

// Update merges the non-nil request fields over the stored record and
// validates the merged result before writing it back.
func (s *AttendeeService) Update(ctx context.Context, id string, req model.AttendeeRequest) (*model.AttendeeView, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	req.MergeInto(a)
	if err := s.check(a); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update attendee: %w", err)
	}
	s.metrics.IncUpdated()
	s.logger.InfoContext(ctx, "attendee updated", "attendee_id", a.ID, "role", a.Role)

	view := s.projector.Project(*a)
	return &view, nil
}

// Get returns a single attendee view.
func (s *AttendeeService) Get(ctx context.Context, id string) (*model.AttendeeView, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.projector.Project(*a)
	return &view, nil
}

// List returns every attendee in registration order.
func (s *AttendeeService) List(ctx context.Context) ([]model.AttendeeView, error) {
	attendees, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return s.projector.ProjectAll(attendees), nil
}

// ListByRole parses token case-insensitively and lists that role.
func (s *AttendeeService) ListByRole(ctx context.Context, token string) ([]model.AttendeeView, error) {
	role, err := model.ParseRole(token)
	if err != nil {
		return nil, err
	}
	attendees, err := s.store.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list attendees by role: %w", err)
	}
	return s.projector.ProjectAll(attendees), nil
}

// ListByLocation parses token case-insensitively and lists attendees coming
// to exactly that part of the event.
func (s *AttendeeService) ListByLocation(ctx context.Context, token string) ([]model.AttendeeView, error) {
	loc, err := model.ParseEventLocation(token)
	if err != nil {
		return nil, err
	}
	attendees, err := s.store.ListByLocation(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("list attendees by location: %w", err)
	}
	return s.projector.ProjectAll(attendees), nil
}

// Search matches term against name, surname and patronymic. A blank term
// returns everyone.
func (s *AttendeeService) Search(ctx context.Context, term string) ([]model.AttendeeView, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	attendees, err := s.store.SearchByName(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search attendees: %w", err)
	}
	return s.projector.ProjectAll(attendees), nil
}

// Delete removes one attendee.
func (s *AttendeeService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("delete attendee: %w", err)
	}
	s.metrics.AddDeleted(1)
	s.logger.InfoContext(ctx, "attendee deleted", "attendee_id", id)
	return nil
}

// DeleteMany checks that every id exists and only then deletes them all.
// The first missing id fails the batch before anything is removed.
// Repeated ids count once.
func (s *AttendeeService) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return ErrEmptyBatch
	}
	ids = distinct(ids)
	for _, id := range ids {
		ok, err := s.store.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check attendee %s: %w", id, err)
		}
		if !ok {
			return fmt.Errorf("attendee %s: %w", id, repository.ErrNotFound)
		}
	}
	if err := s.store.DeleteMany(ctx, ids); err != nil {
		return fmt.Errorf("delete attendees: %w", err)
	}
	s.metrics.AddDeleted(len(ids))
	s.logger.InfoContext(ctx, "attendees deleted", "count", len(ids))
	return nil
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *AttendeeService) load(ctx context.Context, id string) (*model.Attendee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: attendee id is required", ErrInvalidRequest)
	}
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return a, nil
}

// check normalises the name fields and runs the role rules on the full
// candidate record.
func (s *AttendeeService) check(a *model.Attendee) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Surname = strings.TrimSpace(a.Surname)
	if err := checkName("name", a.Name, true); err != nil {
		return err
	}
	if err := checkName("surname", a.Surname, true); err != nil {
		return err
	}
	if a.Patronymic != nil {
		p := strings.TrimSpace(*a.Patronymic)
		a.Patronymic = &p
		if err := checkName("patronymic", p, false); err != nil {
			return err
		}
	}

	if err := rules.Validate(a); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			s.metrics.IncRejected(string(a.Role))
		}
		return err
	}
	return nil
}

func checkName(field, value string, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidRequest, field, maxNameLength)
	}
	return nil
}
