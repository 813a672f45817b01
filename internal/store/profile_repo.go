package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"golang.org/x/mod/semver"

	"github.com/abhisek/braincourse/internal/profile"
)

// ProfileRepo implements profile.Store with one row per profile holding
// the whole record as JSON.
type ProfileRepo struct {
	s *Store
}

var _ profile.Store = (*ProfileRepo)(nil)

// Load reads a profile by id. Unknown ids return profile.ErrNotFound.
func (r *ProfileRepo) Load(ctx context.Context, id string) (*profile.Profile, error) {
	query, args := r.s.builder().Select("schema_version", "data").
		From(entsql.Table(tableProfiles)).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		version string
		raw     []byte
	)
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&version, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", profile.ErrNotFound, id)
	}
	if err != nil {
		return nil, ioErr("load profile", err)
	}

	if !compatible(version) {
		return nil, ioErr("load profile", fmt.Errorf("%w: %s has %s, want %s",
			ErrIncompatibleSchema, id, version, semver.Major(profile.SchemaVersion)))
	}

	var p profile.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ioErr("decode profile", err)
	}
	return &p, nil
}

// Save overwrites the whole record, creating it if needed. Database failures
// are *IOError and may be retried; a record that cannot be encoded yields
// ErrUnencodable and is never written.
func (r *ProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.SchemaVersion = profile.SchemaVersion

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnencodable, p.ID, err)
	}

	query, args := r.s.builder().Insert(tableProfiles).
		Columns(columnNames(profileColumns)...).
		Values(p.ID, string(p.Role.Kind()), p.SchemaVersion, string(raw), p.CreatedAt.UTC(), p.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("role")
				u.SetExcluded("schema_version")
				u.SetExcluded("data")
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return ioErr("save profile", err)
	}
	return nil
}

// ProfileSummary is one row of List.
type ProfileSummary struct {
	ID        string
	Role      profile.RoleKind
	UpdatedAt time.Time
}

// List returns every stored profile id, most recently updated first.
func (r *ProfileRepo) List(ctx context.Context) ([]ProfileSummary, error) {
	query, args := r.s.builder().Select("id", "role", "updated_at").
		From(entsql.Table(tableProfiles)).
		OrderBy(entsql.Desc("updated_at")).
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ioErr("list profiles", err)
	}
	defer rows.Close()

	var out []ProfileSummary
	for rows.Next() {
		var (
			s    ProfileSummary
			role string
		)
		if err := rows.Scan(&s.ID, &role, &s.UpdatedAt); err != nil {
			return nil, ioErr("scan profile", err)
		}
		s.Role = profile.RoleKind(role)
		out = append(out, s)
	}
	return out, ioErr("list profiles", rows.Err())
}

func compatible(version string) bool {
	if !semver.IsValid(version) {
		return false
	}
	return semver.Major(version) == semver.Major(profile.SchemaVersion)
}
