package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
)

// MemoryAttendeeStore keeps attendees in a map. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryAttendeeStore struct {
	mu      sync.RWMutex
	seq     int64
	records map[string]memoryRecord
	fold    cases.Caser
}

type memoryRecord struct {
	seq      int64
	attendee model.Attendee
}

// NewMemoryAttendeeStore returns an empty in-memory attendee store.
func NewMemoryAttendeeStore() *MemoryAttendeeStore {
	return &MemoryAttendeeStore{
		records: make(map[string]memoryRecord),
		fold:    cases.Fold(),
	}
}

func (s *MemoryAttendeeStore) Create(_ context.Context, a *model.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.seq++
	s.records[a.ID] = memoryRecord{seq: s.seq, attendee: clone(*a)}
	return nil
}

func (s *MemoryAttendeeStore) Update(_ context.Context, a *model.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[a.ID]
	if !ok {
		return ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	rec.attendee = clone(*a)
	s.records[a.ID] = rec
	return nil
}

func (s *MemoryAttendeeStore) GetByID(_ context.Context, id string) (*model.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	a := clone(rec.attendee)
	return &a, nil
}

func (s *MemoryAttendeeStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok, nil
}

func (s *MemoryAttendeeStore) List(_ context.Context) ([]model.Attendee, error) {
	return s.filter(func(*model.Attendee) bool { return true }), nil
}

func (s *MemoryAttendeeStore) ListByRole(_ context.Context, role model.Role) ([]model.Attendee, error) {
	return s.filter(func(a *model.Attendee) bool { return a.Role == role }), nil
}

func (s *MemoryAttendeeStore) ListByLocation(_ context.Context, loc model.EventLocation) ([]model.Attendee, error) {
	return s.filter(func(a *model.Attendee) bool {
		return a.EventLocation != nil && *a.EventLocation == loc
	}), nil
}

func (s *MemoryAttendeeStore) SearchByName(_ context.Context, term string) ([]model.Attendee, error) {
	needle := s.fold.String(term)
	return s.filter(func(a *model.Attendee) bool {
		if strings.Contains(s.fold.String(a.Name), needle) ||
			strings.Contains(s.fold.String(a.Surname), needle) {
			return true
		}
		return a.Patronymic != nil && strings.Contains(s.fold.String(*a.Patronymic), needle)
	}), nil
}

func (s *MemoryAttendeeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryAttendeeStore) DeleteMany(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.records, id)
	}
	return nil
}

// filter holds the write lock because keep may use the shared cases.Caser,
// which is not safe for concurrent use.
func (s *MemoryAttendeeStore) filter(keep func(*model.Attendee) bool) []model.Attendee {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]memoryRecord, 0, len(s.records))
	for _, rec := range s.records {
		if keep(&rec.attendee) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	out := make([]model.Attendee, len(matched))
	for i, rec := range matched {
		out[i] = clone(rec.attendee)
	}
	return out
}

func clone(a model.Attendee) model.Attendee {
	a.Patronymic = clonePtr(a.Patronymic)
	a.Squad = clonePtr(a.Squad)
	a.NeedSpeech = clonePtr(a.NeedSpeech)
	a.BirthDate = clonePtr(a.BirthDate)
	a.EventLocation = clonePtr(a.EventLocation)
	a.HasAllergies = clonePtr(a.HasAllergies)
	a.Allergies = clonePtr(a.Allergies)
	a.FoodPreferences = clonePtr(a.FoodPreferences)
	a.WantBowling = clonePtr(a.WantBowling)
	a.AlcoholPreferences = clonePtr(a.AlcoholPreferences)
	a.HasCar = clonePtr(a.HasCar)
	a.TableCompanions = clonePtr(a.TableCompanions)
	a.SpeechCompanions = clonePtr(a.SpeechCompanions)
	a.WillPerform = clonePtr(a.WillPerform)
	a.PerformanceCompanions = clonePtr(a.PerformanceCompanions)
	return a
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// MemoryAdminStore keeps administrators in a map keyed by username.
type MemoryAdminStore struct {
	mu     sync.RWMutex
	admins map[string]model.Admin
}

// NewMemoryAdminStore returns an empty in-memory admin store.
func NewMemoryAdminStore() *MemoryAdminStore {
	return &MemoryAdminStore{admins: make(map[string]model.Admin)}
}

func (s *MemoryAdminStore) Create(_ context.Context, a *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.admins[a.Username]; ok {
		return ErrAlreadyExists
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	s.admins[a.Username] = *a
	return nil
}

func (s *MemoryAdminStore) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryAdminStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[username]
	return ok, nil
}
