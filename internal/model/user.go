package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is one tracked worker record: an opaque identity used as the natural
// key plus the six station values, stored as a single JSON document column.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Identity  string         `gorm:"uniqueIndex;size:256;not null" json:"identity"`
	Stations  datatypes.JSON `gorm:"type:jsonb" json:"stations"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns the storage ID.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// StationValues decodes the stations document. Legacy shapes (flat status
// strings, missing stations) come back normalized to the full six-value form.
func (u *User) StationValues() (StationList, error) {
	if len(u.Stations) == 0 {
		return DefaultStations(), nil
	}
	var l StationList
	if err := json.Unmarshal(u.Stations, &l); err != nil {
		return l, fmt.Errorf("decode stations for user %s: %w", u.ID, err)
	}
	return l, nil
}

// SetStationValues re-encodes the stations document.
func (u *User) SetStationValues(l StationList) error {
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode stations for user %s: %w", u.ID, err)
	}
	u.Stations = datatypes.JSON(b)
	return nil
}

// NormalizeStations rewrites the stations document in the structured form so
// records written under older schemas render consistently.
func (u *User) NormalizeStations() error {
	l, err := u.StationValues()
	if err != nil {
		return err
	}
	return u.SetStationValues(l)
}
