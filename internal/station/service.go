// Package station implements the station-status update and user record
// lifecycle rules on top of the store.
package station

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"station-track-backend/config"
	"station-track-backend/internal/apperr"
	"station-track-backend/internal/model"
	"station-track-backend/internal/store"
)

// Service validates requests and applies station transitions.
type Service struct {
	store         store.Store
	defaultStatus string
}

// NewService creates a new station service.
func NewService(cfg *config.Config, s store.Store) *Service {
	return &Service{
		store:         s,
		defaultStatus: cfg.Station.DefaultScanStatus,
	}
}

// UpdateStation transitions one station of one user record. An empty status
// falls back to the configured default. The stored record changes only when
// every validation passes.
func (s *Service) UpdateStation(ctx context.Context, uid string, stationNumber int, status string) (*model.User, error) {
	id, err := parseUserID(uid)
	if err != nil {
		return nil, err
	}
	if stationNumber < 1 || stationNumber > model.StationCount {
		return nil, apperr.Validation("invalid station number")
	}

	status = strings.TrimSpace(status)
	if status == "" {
		status = s.defaultStatus
	}

	return s.store.UpdateStation(ctx, id, stationNumber, status, time.Now().UTC())
}

// RegisterUser creates a user record for identity unless one already exists.
// The bool reports whether a record was created.
func (s *Service) RegisterUser(ctx context.Context, identity string, stations *model.StationList) (*model.User, bool, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, false, apperr.Validation("no identity provided")
	}
	return s.store.CreateUserIfAbsent(ctx, identity, stations)
}

// UserByID looks up a user record by its storage ID.
func (s *Service) UserByID(ctx context.Context, uid string) (*model.User, error) {
	id, err := parseUserID(uid)
	if err != nil {
		return nil, err
	}
	return s.store.GetUserByID(ctx, id)
}

// UsersByIdentity returns the records matching identity. Absence is not an
// error here; the result is simply empty.
func (s *Service) UsersByIdentity(ctx context.Context, identity string) ([]model.User, error) {
	user, err := s.store.GetUserByIdentity(ctx, identity)
	if apperr.KindOf(err) == apperr.KindNotFound {
		return []model.User{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []model.User{*user}, nil
}

func parseUserID(uid string) (uuid.UUID, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return uuid.Nil, apperr.Validation("invalid or missing uid")
	}
	id, err := uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid or missing uid")
	}
	return id, nil
}
