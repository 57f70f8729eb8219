package rebels

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NegotiationRecord is the append-only audit row written in the same
// transaction that moves the items.
type NegotiationRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	RebelA string `gorm:"column:rebel_a;not null;index" json:"rebel_a"`
	RebelB string `gorm:"column:rebel_b;not null;index" json:"rebel_b"`

	// [{"name":"Weapon","quantity":1}, ...]
	ItemsA datatypes.JSON `gorm:"column:items_a" json:"items_a"`
	ItemsB datatypes.JSON `gorm:"column:items_b" json:"items_b"`

	Points int `gorm:"column:points;not null" json:"points"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (NegotiationRecord) TableName() string { return "negotiation_records" }
