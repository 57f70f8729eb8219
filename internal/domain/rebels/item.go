package rebels

import "time"

// ItemTemplate is a catalog entry: a fungible item type and its point value.
type ItemTemplate struct {
	Name   string `gorm:"primaryKey;column:name" json:"name"`
	Points int    `gorm:"column:points;not null" json:"points"`
}

func (ItemTemplate) TableName() string { return "item_templates" }

// Item is one holding: how many units of a template a rebel owns.
// Rows never carry a zero quantity; they are deleted instead.
type Item struct {
	OwnerName    string `gorm:"primaryKey;column:owner_name" json:"-"`
	TemplateName string `gorm:"primaryKey;column:template_name" json:"name"`
	Quantity     int    `gorm:"column:quantity;not null" json:"quantity"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Item) TableName() string { return "items" }
