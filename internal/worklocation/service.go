package worklocation

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("work location not found")
	ErrInvalid  = errors.New("invalid work location")
)

type Service struct {
	store *Store
}

func NewService(db DBTX) *Service {
	return &Service{store: NewStore(db)}
}

func validate(l *WorkLocation) error {
	if l.Name == "" {
		return ErrInvalid
	}
	if l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180 {
		return ErrInvalid
	}
	if l.RadiusMeters <= 0 {
		return ErrInvalid
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]WorkLocation, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, l WorkLocation) (WorkLocation, error) {
	if err := validate(&l); err != nil {
		return WorkLocation{}, err
	}
	id, err := s.store.Create(ctx, &l)
	if err != nil {
		return WorkLocation{}, err
	}
	l.ID = id
	return l, nil
}

func (s *Service) Update(ctx context.Context, l WorkLocation) error {
	if err := validate(&l); err != nil {
		return err
	}
	n, err := s.store.Update(ctx, &l)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// NearestSite: 座標に最も近い拠点と距離、半径内かどうか。
// 拠点が未登録なら (nil, 0, false)。
func (s *Service) NearestSite(ctx context.Context, lat, lon float64) (*WorkLocation, float64, bool, error) {
	locations, err := s.store.List(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	site, dist := Nearest(locations, lat, lon)
	if site == nil {
		return nil, 0, false, nil
	}
	return site, dist, dist <= float64(site.RadiusMeters), nil
}
