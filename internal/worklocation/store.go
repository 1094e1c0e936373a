package worklocation

import (
	"context"
	"database/sql"
	"errors"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

func (s *Store) List(ctx context.Context) ([]WorkLocation, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT location_id, name, latitude, longitude, radius_meters
	FROM work_locations
	ORDER BY location_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkLocation
	for rows.Next() {
		var l WorkLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.RadiusMeters); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, id int64) (*WorkLocation, error) {
	var l WorkLocation
	err := s.db.QueryRowContext(ctx, `
	SELECT location_id, name, latitude, longitude, radius_meters
	FROM work_locations
	WHERE location_id = ? LIMIT 1`, id,
	).Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.RadiusMeters)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) Create(ctx context.Context, l *WorkLocation) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO work_locations (name, latitude, longitude, radius_meters)
	VALUES (?, ?, ?, ?)`, l.Name, l.Latitude, l.Longitude, l.RadiusMeters)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) Update(ctx context.Context, l *WorkLocation) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	UPDATE work_locations
	SET name = ?, latitude = ?, longitude = ?, radius_meters = ?
	WHERE location_id = ?`, l.Name, l.Latitude, l.Longitude, l.RadiusMeters, l.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_locations WHERE location_id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
