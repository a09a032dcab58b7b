package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"station-track-backend/internal/apperr"
	"station-track-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// CreateUserIfAbsent inserts a new user record for identity unless one
	// already exists. The bool reports whether a record was created; the
	// existing record is never overwritten.
	CreateUserIfAbsent(ctx context.Context, identity string, stations *model.StationList) (*model.User, bool, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByIdentity(ctx context.Context, identity string) (*model.User, error)
	// UpdateStation transitions exactly one station of one user record,
	// stamping its modification time with now.
	UpdateStation(ctx context.Context, id uuid.UUID, stationNumber int, status string, now time.Time) (*model.User, error)
	AppendBarcode(ctx context.Context, payload string) (*model.Barcode, error)
	ListBarcodes(ctx context.Context) ([]model.Barcode, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateUserIfAbsent(ctx context.Context, identity string, stations *model.StationList) (*model.User, bool, error) {
	if identity == "" {
		return nil, false, apperr.Validation("identity is required")
	}

	list := model.DefaultStations()
	if stations != nil {
		list = *stations
	}

	user := model.User{Identity: identity}
	if err := user.SetStationValues(list); err != nil {
		return nil, false, apperr.Storage("failed to encode stations", err)
	}

	// Conditional insert: the unique index on identity makes racing creates
	// for the same identity collapse to a single surviving row.
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity"}},
		DoNothing: true,
	}).Create(&user)
	if res.Error != nil {
		return nil, false, apperr.Storage("failed to create user", res.Error)
	}
	if res.RowsAffected == 0 {
		existing, err := s.GetUserByIdentity(ctx, identity)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return &user, true, nil
}

func (s *gormStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to load user", err)
	}
	if err := user.NormalizeStations(); err != nil {
		return nil, apperr.Storage("failed to decode user record", err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByIdentity(ctx context.Context, identity string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "identity = ?", identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to load user", err)
	}
	if err := user.NormalizeStations(); err != nil {
		return nil, apperr.Storage("failed to decode user record", err)
	}
	return &user, nil
}

func (s *gormStore) UpdateStation(ctx context.Context, id uuid.UUID, stationNumber int, status string, now time.Time) (*model.User, error) {
	if stationNumber < 1 || stationNumber > model.StationCount {
		return nil, apperr.Validation("station number must be between 1 and %d", model.StationCount)
	}
	if status == "" {
		return nil, apperr.Validation("status is required")
	}

	var user model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock for the read-modify-write: two updates against the same
		// record serialize instead of reverting each other's station.
		// The sqlite dialect drops the locking clause; its writers are
		// serialized by the engine itself.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		list, err := user.StationValues()
		if err != nil {
			return err
		}
		ts := now
		list[stationNumber-1] = model.StationValue{Status: status, LastModified: &ts}
		if err := user.SetStationValues(list); err != nil {
			return err
		}

		// Only the stations document is written back; identity and id are
		// never touched by status updates.
		return tx.Model(&user).Update("stations", user.Stations).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to update station status", err)
	}
	return &user, nil
}

func (s *gormStore) AppendBarcode(ctx context.Context, payload string) (*model.Barcode, error) {
	if payload == "" {
		return nil, apperr.Validation("no barcode data provided")
	}

	entry := model.Barcode{Payload: payload}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, apperr.Storage("failed to insert barcode data", err)
	}
	return &entry, nil
}

func (s *gormStore) ListBarcodes(ctx context.Context) ([]model.Barcode, error) {
	var entries []model.Barcode
	if err := s.db.WithContext(ctx).Order("created_at").Find(&entries).Error; err != nil {
		return nil, apperr.Storage("failed to retrieve barcode data", err)
	}
	return entries, nil
}
