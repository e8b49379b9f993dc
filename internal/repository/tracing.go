package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
)

const tracerName = "github.com/Shivanand-hulikatti/attendee-registry/internal/repository"

// TracedAttendeeStore wraps an AttendeeStore with a span per call.
type TracedAttendeeStore struct {
	next   AttendeeStore
	tracer trace.Tracer
}

// NewTracedAttendeeStore decorates next with tracing. A nil tp uses the
// global provider.
func NewTracedAttendeeStore(next AttendeeStore, tp trace.TracerProvider) *TracedAttendeeStore {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracedAttendeeStore{next: next, tracer: tp.Tracer(tracerName)}
}

func (s *TracedAttendeeStore) Create(ctx context.Context, a *model.Attendee) error {
	ctx, span := s.tracer.Start(ctx, "CreateAttendee",
		trace.WithAttributes(attribute.String("attendee.role", string(a.Role))))
	defer span.End()
	err := s.next.Create(ctx, a)
	record(span, err)
	return err
}

func (s *TracedAttendeeStore) Update(ctx context.Context, a *model.Attendee) error {
	ctx, span := s.tracer.Start(ctx, "UpdateAttendee",
		trace.WithAttributes(attribute.String("attendee.id", a.ID)))
	defer span.End()
	err := s.next.Update(ctx, a)
	record(span, err)
	return err
}

func (s *TracedAttendeeStore) GetByID(ctx context.Context, id string) (*model.Attendee, error) {
	ctx, span := s.tracer.Start(ctx, "GetAttendee",
		trace.WithAttributes(attribute.String("attendee.id", id)))
	defer span.End()
	a, err := s.next.GetByID(ctx, id)
	record(span, err)
	return a, err
}

func (s *TracedAttendeeStore) Exists(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "AttendeeExists",
		trace.WithAttributes(attribute.String("attendee.id", id)))
	defer span.End()
	ok, err := s.next.Exists(ctx, id)
	record(span, err)
	return ok, err
}

func (s *TracedAttendeeStore) List(ctx context.Context) ([]model.Attendee, error) {
	ctx, span := s.tracer.Start(ctx, "ListAttendees")
	defer span.End()
	out, err := s.next.List(ctx)
	span.SetAttributes(attribute.Int("attendee.count", len(out)))
	record(span, err)
	return out, err
}

func (s *TracedAttendeeStore) ListByRole(ctx context.Context, role model.Role) ([]model.Attendee, error) {
	ctx, span := s.tracer.Start(ctx, "ListAttendeesByRole",
		trace.WithAttributes(attribute.String("attendee.role", string(role))))
	defer span.End()
	out, err := s.next.ListByRole(ctx, role)
	span.SetAttributes(attribute.Int("attendee.count", len(out)))
	record(span, err)
	return out, err
}

func (s *TracedAttendeeStore) ListByLocation(ctx context.Context, loc model.EventLocation) ([]model.Attendee, error) {
	ctx, span := s.tracer.Start(ctx, "ListAttendeesByLocation",
		trace.WithAttributes(attribute.String("attendee.location", string(loc))))
	defer span.End()
	out, err := s.next.ListByLocation(ctx, loc)
	span.SetAttributes(attribute.Int("attendee.count", len(out)))
	record(span, err)
	return out, err
}

func (s *TracedAttendeeStore) SearchByName(ctx context.Context, term string) ([]model.Attendee, error) {
	ctx, span := s.tracer.Start(ctx, "SearchAttendees")
	defer span.End()
	out, err := s.next.SearchByName(ctx, term)
	span.SetAttributes(attribute.Int("attendee.count", len(out)))
	record(span, err)
	return out, err
}

func (s *TracedAttendeeStore) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "DeleteAttendee",
		trace.WithAttributes(attribute.String("attendee.id", id)))
	defer span.End()
	err := s.next.Delete(ctx, id)
	record(span, err)
	return err
}

func (s *TracedAttendeeStore) DeleteMany(ctx context.Context, ids []string) error {
	ctx, span := s.tracer.Start(ctx, "DeleteAttendees",
		trace.WithAttributes(attribute.Int("attendee.count", len(ids))))
	defer span.End()
	err := s.next.DeleteMany(ctx, ids)
	record(span, err)
	return err
}

// record marks the span failed unless err is nil or a plain miss.
func record(span trace.Span, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrNotFound) {
		span.AddEvent("not found")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
