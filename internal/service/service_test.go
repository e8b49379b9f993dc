package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/metrics"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/projection"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/service"
)

func ptr[T any](v T) *T { return &v }

var evaluation = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

type AttendeeServiceSuite struct {
	suite.Suite
	store   *repository.MemoryAttendeeStore
	metrics *metrics.Metrics
	svc     *service.AttendeeService
}

func TestAttendeeServiceSuite(t *testing.T) {
	suite.Run(t, new(AttendeeServiceSuite))
}

func (s *AttendeeServiceSuite) SetupTest() {
	s.store = repository.NewMemoryAttendeeStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = service.NewAttendeeService(
		s.store,
		projection.New(func() time.Time { return evaluation }),
		s.metrics,
		discardLogger(),
	)
}

func (s *AttendeeServiceSuite) createVeteran() *model.AttendeeView {
	v, err := s.svc.Create(context.Background(), model.AttendeeRequest{
		Name:          ptr("Pavel"),
		Surname:       ptr("Orlov"),
		Role:          ptr(model.RoleVeteran),
		EventLocation: ptr(model.LocationBoth),
	})
	s.Require().NoError(err)
	return v
}

func (s *AttendeeServiceSuite) TestCreateGuest() {
	v, err := s.svc.Create(context.Background(), model.AttendeeRequest{
		Name:    ptr("  Anna "),
		Surname: ptr("Petrova"),
		Role:    ptr(model.RoleGuest),
		Squad:   ptr(model.SquadVega),
	})
	s.Require().NoError(err)

	s.NotEmpty(v.ID)
	s.Equal("Anna", v.Name)
	s.True(v.Valid)
	s.Require().NotNil(v.SquadDisplayName)
	s.Equal(`СО "Вега"`, *v.SquadDisplayName)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AttendeesCreated))
}

func (s *AttendeeServiceSuite) TestCreateRejectsForbiddenField() {
	_, err := s.svc.Create(context.Background(), model.AttendeeRequest{
		Name:      ptr("Anna"),
		Surname:   ptr("Petrova"),
		Role:      ptr(model.RoleGuest),
		Squad:     ptr(model.SquadVega),
		BirthDate: ptr(model.NewDate(1990, 1, 1)),
	})

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal([]string{"Guest cannot have a birth date"}, verr.Messages())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ValidationRejected.WithLabelValues("GUEST")))

	all, err := s.svc.List(context.Background())
	s.Require().NoError(err)
	s.Empty(all, "rejected writes are never stored")
}

func (s *AttendeeServiceSuite) TestCreateRequiresNamesAndRole() {
	ctx := context.Background()
	tests := []struct {
		name string
		req  model.AttendeeRequest
	}{
		{"no role", model.AttendeeRequest{Name: ptr("A"), Surname: ptr("B")}},
		{"blank name", model.AttendeeRequest{Name: ptr("  "), Surname: ptr("B"), Role: ptr(model.RoleGuest), Squad: ptr(model.SquadVega)}},
		{"no surname", model.AttendeeRequest{Name: ptr("A"), Role: ptr(model.RoleGuest), Squad: ptr(model.SquadVega)}},
		{"long patronymic", model.AttendeeRequest{
			Name: ptr("A"), Surname: ptr("B"), Role: ptr(model.RoleGuest), Squad: ptr(model.SquadVega),
			Patronymic: ptr(string(make([]rune, 101))),
		}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Create(ctx, tt.req)
			s.ErrorIs(err, service.ErrInvalidRequest)
		})
	}
}

func (s *AttendeeServiceSuite) TestUpdateValidatesMergedRecord() {
	ctx := context.Background()
	v, err := s.svc.Create(ctx, model.AttendeeRequest{
		Name:    ptr("Pavel"),
		Surname: ptr("Orlov"),
		Role:    ptr(model.RoleGuest),
		Squad:   ptr(model.SquadVega),
	})
	s.Require().NoError(err)

	// Switching to veteran keeps the guest squad and never set a location.
	_, err = s.svc.Update(ctx, v.ID, model.AttendeeRequest{
		Role:        ptr(model.RoleVeteran),
		WillPerform: ptr(true),
	})

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal([]string{"Veteran cannot have a squad", "Veteran must specify event location"}, verr.Messages())

	stored, err := s.svc.Get(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(model.RoleGuest, stored.Role, "rejected update leaves the record untouched")
	s.Nil(stored.WillPerform)
}

func (s *AttendeeServiceSuite) TestUpdateVeteranWithoutLocation() {
	ctx := context.Background()
	a := model.Attendee{Name: "Pavel", Surname: "Orlov", Role: model.RoleVeteran}
	// Stored under looser historical rules.
	s.Require().NoError(s.store.Create(ctx, &a))

	_, err := s.svc.Update(ctx, a.ID, model.AttendeeRequest{WillPerform: ptr(true)})

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal([]string{"Veteran must specify event location"}, verr.Messages())
}

func (s *AttendeeServiceSuite) TestUpdateMergesFields() {
	ctx := context.Background()
	v := s.createVeteran()

	updated, err := s.svc.Update(ctx, v.ID, model.AttendeeRequest{
		HasCar:          ptr(true),
		TableCompanions: ptr("Ivanov"),
	})
	s.Require().NoError(err)

	s.Equal("Pavel", updated.Name)
	s.Equal(model.LocationBoth, *updated.EventLocation)
	s.True(*updated.HasCar)
	s.Equal("Ivanov", *updated.TableCompanions)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AttendeesUpdated))
}

func (s *AttendeeServiceSuite) TestUpdateMissing() {
	_, err := s.svc.Update(context.Background(), "missing", model.AttendeeRequest{Name: ptr("X")})
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *AttendeeServiceSuite) TestListByRoleAndLocation() {
	ctx := context.Background()
	veteran := s.createVeteran()
	_, err := s.svc.Create(ctx, model.AttendeeRequest{
		Name: ptr("Oleg"), Surname: ptr("Sokolov"),
		Role: ptr(model.RoleFighter), EventLocation: ptr(model.LocationBanquet),
	})
	s.Require().NoError(err)

	got, err := s.svc.ListByRole(ctx, "veteran")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(veteran.ID, got[0].ID)

	got, err = s.svc.ListByLocation(ctx, "Banquet")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Oleg", got[0].Name)

	_, err = s.svc.ListByRole(ctx, "captain")
	var enumErr *model.InvalidEnumError
	s.ErrorAs(err, &enumErr)

	_, err = s.svc.ListByLocation(ctx, "afterparty")
	s.ErrorAs(err, &enumErr)
}

func (s *AttendeeServiceSuite) TestSearch() {
	ctx := context.Background()
	s.createVeteran()
	_, err := s.svc.Create(ctx, model.AttendeeRequest{
		Name: ptr("Anna"), Surname: ptr("Petrova"),
		Role: ptr(model.RoleGuest), Squad: ptr(model.SquadGnom),
	})
	s.Require().NoError(err)

	got, err := s.svc.Search(ctx, "ORL")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Orlov", got[0].Surname)

	got, err = s.svc.Search(ctx, "   ")
	s.Require().NoError(err)
	s.Len(got, 2, "blank term returns everyone")
}

func (s *AttendeeServiceSuite) TestDelete() {
	ctx := context.Background()
	v := s.createVeteran()

	s.Require().NoError(s.svc.Delete(ctx, v.ID))
	s.ErrorIs(s.svc.Delete(ctx, v.ID), repository.ErrNotFound)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AttendeesDeleted))
}

func (s *AttendeeServiceSuite) TestDeleteManyIsAllOrNothing() {
	ctx := context.Background()
	a := s.createVeteran()
	b := s.createVeteran()

	err := s.svc.DeleteMany(ctx, []string{a.ID, "missing", b.ID})
	s.ErrorIs(err, repository.ErrNotFound)

	all, err := s.svc.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 2, "nothing deleted when one id is missing")

	s.Require().NoError(s.svc.DeleteMany(ctx, []string{a.ID, b.ID}))
	all, err = s.svc.List(ctx)
	s.Require().NoError(err)
	s.Empty(all)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.AttendeesDeleted))
}

func (s *AttendeeServiceSuite) TestDeleteManyCountsRepeatedIDsOnce() {
	ctx := context.Background()
	a := s.createVeteran()
	b := s.createVeteran()
	keep := s.createVeteran()

	s.Require().NoError(s.svc.DeleteMany(ctx, []string{a.ID, b.ID, a.ID, a.ID}))

	all, err := s.svc.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(keep.ID, all[0].ID)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.AttendeesDeleted))
}

func (s *AttendeeServiceSuite) TestDeleteManyRejectsEmptyList() {
	s.ErrorIs(s.svc.DeleteMany(context.Background(), nil), service.ErrEmptyBatch)
}

// failingStore wraps the memory store and fails every List call.
type failingStore struct {
	*repository.MemoryAttendeeStore
}

var errStoreDown = errors.New("store down")

func (failingStore) List(context.Context) ([]model.Attendee, error) {
	return nil, errStoreDown
}

func TestAttendeeServiceWrapsStoreErrors(t *testing.T) {
	svc := service.NewAttendeeService(
		failingStore{repository.NewMemoryAttendeeStore()},
		projection.New(nil),
		nil,
		discardLogger(),
	)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Contains(t, err.Error(), "list attendees")
}
