package repository_test

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
)

func ptr[T any](v T) *T { return &v }

// AttendeeStoreSuite exercises the AttendeeStore contract. Each backend
// supplies a fresh, empty store per test.
type AttendeeStoreSuite struct {
	suite.Suite
	newStore func() repository.AttendeeStore
	store    repository.AttendeeStore
}

func (s *AttendeeStoreSuite) SetupTest() {
	s.store = s.newStore()
}

func (s *AttendeeStoreSuite) create(a model.Attendee) model.Attendee {
	s.Require().NoError(s.store.Create(context.Background(), &a))
	return a
}

func (s *AttendeeStoreSuite) TestCreateAssignsIDAndTimestamps() {
	a := s.create(model.Attendee{Name: "Anna", Surname: "Petrova", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})

	s.NotEmpty(a.ID)
	s.False(a.CreatedAt.IsZero())
	s.Equal(a.CreatedAt, a.UpdatedAt)

	got, err := s.store.GetByID(context.Background(), a.ID)
	s.Require().NoError(err)
	s.Equal("Anna", got.Name)
	s.Equal(model.RoleGuest, got.Role)
	s.Require().NotNil(got.Squad)
	s.Equal(model.SquadVega, *got.Squad)
	s.Nil(got.BirthDate)
}

func (s *AttendeeStoreSuite) TestRoundTripsOptionalFields() {
	a := s.create(model.Attendee{
		Name:                  "Pavel",
		Surname:               "Orlov",
		Patronymic:            ptr("Petrovich"),
		Role:                  model.RoleVeteran,
		NeedSpeech:            ptr(false),
		EventLocation:         ptr(model.LocationBoth),
		HasAllergies:          ptr(true),
		Allergies:             ptr("nuts"),
		WillPerform:           ptr(true),
		PerformanceCompanions: ptr("band"),
	})

	got, err := s.store.GetByID(context.Background(), a.ID)
	s.Require().NoError(err)
	s.Equal("Petrovich", *got.Patronymic)
	s.False(*got.NeedSpeech)
	s.Equal(model.LocationBoth, *got.EventLocation)
	s.Equal("nuts", *got.Allergies)
	s.Equal("band", *got.PerformanceCompanions)
	s.Nil(got.HasCar)
}

func (s *AttendeeStoreSuite) TestRoundTripsBirthDate() {
	a := s.create(model.Attendee{
		Name:          "Ivan",
		Surname:       "Ivanov",
		Role:          model.RoleNovice,
		BirthDate:     ptr(model.NewDate(2008, 6, 16)),
		EventLocation: ptr(model.LocationBanquet),
	})

	got, err := s.store.GetByID(context.Background(), a.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.BirthDate)
	s.Equal("2008-06-16", got.BirthDate.String())
}

func (s *AttendeeStoreSuite) TestGetMissing() {
	_, err := s.store.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, repository.ErrNotFound)

	_, err = s.store.GetByID(context.Background(), "not-a-uuid")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *AttendeeStoreSuite) TestUpdate() {
	a := s.create(model.Attendee{Name: "Oleg", Surname: "Sokolov", Role: model.RoleFighter, EventLocation: ptr(model.LocationBanquet)})

	a.HasCar = ptr(true)
	a.EventLocation = ptr(model.LocationOfficialPart)
	s.Require().NoError(s.store.Update(context.Background(), &a))

	got, err := s.store.GetByID(context.Background(), a.ID)
	s.Require().NoError(err)
	s.True(*got.HasCar)
	s.Equal(model.LocationOfficialPart, *got.EventLocation)
	s.False(got.UpdatedAt.Before(got.CreatedAt))

	missing := model.Attendee{ID: "00000000-0000-0000-0000-000000000001", Name: "X", Surname: "Y", Role: model.RoleGuest}
	s.ErrorIs(s.store.Update(context.Background(), &missing), repository.ErrNotFound)
}

func (s *AttendeeStoreSuite) TestListsInRegistrationOrder() {
	first := s.create(model.Attendee{Name: "A", Surname: "First", Role: model.RoleVeteran, EventLocation: ptr(model.LocationBanquet)})
	second := s.create(model.Attendee{Name: "B", Surname: "Second", Role: model.RoleGuest, Squad: ptr(model.SquadGnom)})
	third := s.create(model.Attendee{Name: "C", Surname: "Third", Role: model.RoleVeteran, EventLocation: ptr(model.LocationBoth)})
	ctx := context.Background()

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Equal([]string{first.ID, second.ID, third.ID}, ids(all))

	veterans, err := s.store.ListByRole(ctx, model.RoleVeteran)
	s.Require().NoError(err)
	s.Equal([]string{first.ID, third.ID}, ids(veterans))

	banquet, err := s.store.ListByLocation(ctx, model.LocationBanquet)
	s.Require().NoError(err)
	s.Equal([]string{first.ID}, ids(banquet))

	none, err := s.store.ListByRole(ctx, model.RoleNovice)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *AttendeeStoreSuite) TestSearchByNameIsCaseInsensitive() {
	anna := s.create(model.Attendee{Name: "Анна", Surname: "Петрова", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})
	ivan := s.create(model.Attendee{Name: "Иван", Surname: "Сидоров", Patronymic: ptr("Петрович"), Role: model.RoleGuest, Squad: ptr(model.SquadVega)})
	s.create(model.Attendee{Name: "Oleg", Surname: "Orlov", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})
	ctx := context.Background()

	got, err := s.store.SearchByName(ctx, "петр")
	s.Require().NoError(err)
	s.Equal([]string{anna.ID, ivan.ID}, ids(got))

	got, err = s.store.SearchByName(ctx, "АННА")
	s.Require().NoError(err)
	s.Equal([]string{anna.ID}, ids(got))

	got, err = s.store.SearchByName(ctx, "%")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *AttendeeStoreSuite) TestDelete() {
	a := s.create(model.Attendee{Name: "A", Surname: "B", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})
	ctx := context.Background()

	s.Require().NoError(s.store.Delete(ctx, a.ID))
	s.ErrorIs(s.store.Delete(ctx, a.ID), repository.ErrNotFound)

	ok, err := s.store.Exists(ctx, a.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *AttendeeStoreSuite) TestDeleteMany() {
	a := s.create(model.Attendee{Name: "A", Surname: "A", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})
	b := s.create(model.Attendee{Name: "B", Surname: "B", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})
	c := s.create(model.Attendee{Name: "C", Surname: "C", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})
	ctx := context.Background()

	s.Require().NoError(s.store.DeleteMany(ctx, []string{a.ID, c.ID}))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Equal([]string{b.ID}, ids(all))
}

func ids(attendees []model.Attendee) []string {
	out := make([]string, len(attendees))
	for i, a := range attendees {
		out[i] = a.ID
	}
	return out
}

// AdminStoreSuite exercises the AdminStore contract.
type AdminStoreSuite struct {
	suite.Suite
	newStore func() repository.AdminStore
	store    repository.AdminStore
}

func (s *AdminStoreSuite) SetupTest() {
	s.store = s.newStore()
}

func (s *AdminStoreSuite) TestCreateAndGet() {
	ctx := context.Background()
	a := &model.Admin{Username: "admin", PasswordHash: "hash"}
	s.Require().NoError(s.store.Create(ctx, a))
	s.NotEmpty(a.ID)

	got, err := s.store.GetByUsername(ctx, "admin")
	s.Require().NoError(err)
	s.Equal("hash", got.PasswordHash)

	exists, err := s.store.ExistsByUsername(ctx, "admin")
	s.Require().NoError(err)
	s.True(exists)

	s.ErrorIs(s.store.Create(ctx, &model.Admin{Username: "admin", PasswordHash: "other"}), repository.ErrAlreadyExists)

	_, err = s.store.GetByUsername(ctx, "nobody")
	s.ErrorIs(err, repository.ErrNotFound)
}
