package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Barcode is one immutable scan event. Entries are append-only and carry no
// relation to user records.
type Barcode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Payload   string    `gorm:"size:512;not null" json:"barcodeData"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

// BeforeCreate assigns the storage ID.
func (b *Barcode) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
