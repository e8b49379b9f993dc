package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
)

// AttendeeRepository handles persistence for attendees.
type AttendeeRepository struct {
	db *pgxpool.Pool
}

// NewAttendeeRepository constructs an AttendeeRepository.
func NewAttendeeRepository(db *pgxpool.Pool) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

const attendeeColumns = `id::text, name, surname, patronymic, role, squad, need_speech, birth_date,
	event_location, has_allergies, allergies, food_preferences, want_bowling,
	alcohol_preferences, has_car, table_companions, speech_companions,
	will_perform, performance_companions, created_at, updated_at`

// Create inserts a new attendee with a generated UUID.
func (r *AttendeeRepository) Create(ctx context.Context, a *model.Attendee) error {
	id := uuid.New()
	now := time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO attendees (id, name, surname, patronymic, role, squad, need_speech, birth_date,
			event_location, has_allergies, allergies, food_preferences, want_bowling,
			alcohol_preferences, has_car, table_companions, speech_companions,
			will_perform, performance_companions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)`,
		id, a.Name, a.Surname, a.Patronymic, string(a.Role), enumArg(a.Squad), a.NeedSpeech, dateArg(a.BirthDate),
		enumArg(a.EventLocation), a.HasAllergies, a.Allergies, a.FoodPreferences, a.WantBowling,
		a.AlcoholPreferences, a.HasCar, a.TableCompanions, a.SpeechCompanions,
		a.WillPerform, a.PerformanceCompanions, now,
	)
	if err != nil {
		return fmt.Errorf("insert attendee: %w", err)
	}
	a.ID = id.String()
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// Update overwrites every mutable column of an existing attendee.
func (r *AttendeeRepository) Update(ctx context.Context, a *model.Attendee) error {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()

	tag, err := r.db.Exec(ctx,
		`UPDATE attendees SET
			name = $2, surname = $3, patronymic = $4, role = $5, squad = $6, need_speech = $7,
			birth_date = $8, event_location = $9, has_allergies = $10, allergies = $11,
			food_preferences = $12, want_bowling = $13, alcohol_preferences = $14, has_car = $15,
			table_companions = $16, speech_companions = $17, will_perform = $18,
			performance_companions = $19, updated_at = $20
		 WHERE id = $1`,
		id, a.Name, a.Surname, a.Patronymic, string(a.Role), enumArg(a.Squad), a.NeedSpeech,
		dateArg(a.BirthDate), enumArg(a.EventLocation), a.HasAllergies, a.Allergies,
		a.FoodPreferences, a.WantBowling, a.AlcoholPreferences, a.HasCar,
		a.TableCompanions, a.SpeechCompanions, a.WillPerform,
		a.PerformanceCompanions, now,
	)
	if err != nil {
		return fmt.Errorf("update attendee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	a.UpdatedAt = now
	return nil
}

// GetByID returns a single attendee or ErrNotFound.
func (r *AttendeeRepository) GetByID(ctx context.Context, id string) (*model.Attendee, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	a, err := scanAttendee(r.db.QueryRow(ctx,
		`SELECT `+attendeeColumns+` FROM attendees WHERE id = $1`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return a, nil
}

// Exists reports whether an attendee with id is stored.
func (r *AttendeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendees WHERE id = $1)`, uid,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check attendee: %w", err)
	}
	return exists, nil
}

// List returns all attendees in registration order.
func (r *AttendeeRepository) List(ctx context.Context) ([]model.Attendee, error) {
	return r.query(ctx, "list attendees",
		`SELECT `+attendeeColumns+` FROM attendees ORDER BY seq ASC`)
}

// ListByRole returns all attendees with the given role.
func (r *AttendeeRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Attendee, error) {
	return r.query(ctx, "list attendees by role",
		`SELECT `+attendeeColumns+` FROM attendees WHERE role = $1 ORDER BY seq ASC`, string(role))
}

// ListByLocation returns all attendees coming to the given part of the event.
func (r *AttendeeRepository) ListByLocation(ctx context.Context, loc model.EventLocation) ([]model.Attendee, error) {
	return r.query(ctx, "list attendees by location",
		`SELECT `+attendeeColumns+` FROM attendees WHERE event_location = $1 ORDER BY seq ASC`, string(loc))
}

// SearchByName matches term as a case-insensitive substring.
func (r *AttendeeRepository) SearchByName(ctx context.Context, term string) ([]model.Attendee, error) {
	pattern := "%" + escapeLike(term) + "%"
	return r.query(ctx, "search attendees",
		`SELECT `+attendeeColumns+` FROM attendees
		 WHERE name ILIKE $1 OR surname ILIKE $1 OR patronymic ILIKE $1
		 ORDER BY seq ASC`, pattern)
}

// Delete removes one attendee or returns ErrNotFound.
func (r *AttendeeRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM attendees WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes every listed attendee in one statement. Ids that are
// already gone are ignored; existence checks belong to the caller.
func (r *AttendeeRepository) DeleteMany(ctx context.Context, ids []string) error {
	uids := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		uid, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		uids = append(uids, uid)
	}
	if len(uids) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM attendees WHERE id = ANY($1)`, uids); err != nil {
		return fmt.Errorf("delete attendees: %w", err)
	}
	return nil
}

func (r *AttendeeRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.Attendee, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []model.Attendee
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAttendee(row pgx.Row) (*model.Attendee, error) {
	var (
		a        model.Attendee
		role     string
		squad    *string
		location *string
		birth    *time.Time
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Surname, &a.Patronymic, &role, &squad, &a.NeedSpeech, &birth,
		&location, &a.HasAllergies, &a.Allergies, &a.FoodPreferences, &a.WantBowling,
		&a.AlcoholPreferences, &a.HasCar, &a.TableCompanions, &a.SpeechCompanions,
		&a.WillPerform, &a.PerformanceCompanions, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// Stored tokens are written by this package; keep them verbatim so a
	// record with a retired token still loads.
	a.Role = model.Role(role)
	if squad != nil {
		s := model.Squad(*squad)
		a.Squad = &s
	}
	if location != nil {
		l := model.EventLocation(*location)
		a.EventLocation = &l
	}
	if birth != nil {
		d := model.NewDate(birth.Year(), birth.Month(), birth.Day())
		a.BirthDate = &d
	}
	return &a, nil
}

func enumArg[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func dateArg(d *model.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// AdminRepository handles persistence for administrators.
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts an admin; a taken username yields ErrAlreadyExists.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	id := uuid.New()
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO admins (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		id, a.Username, a.PasswordHash, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	a.ID = id.String()
	a.CreatedAt = now
	return nil
}

// GetByUsername returns an admin or ErrNotFound.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := r.db.QueryRow(ctx,
		`SELECT id::text, username, password_hash, created_at FROM admins WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

// ExistsByUsername reports whether username is taken.
func (r *AdminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE username = $1)`, username,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return exists, nil
}
