package rebels

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TraitorThreshold is the total number of treason reports (repeats included)
// at which a rebel becomes a traitor.
const TraitorThreshold = 3

type Gender int

const (
	GenderUndefined Gender = iota
	GenderMale
	GenderFemale
	GenderDroid
	GenderOther
)

var genderNames = map[Gender]string{
	GenderUndefined: "undefined",
	GenderMale:      "male",
	GenderFemale:    "female",
	GenderDroid:     "droid",
	GenderOther:     "other",
}

func (g Gender) Valid() bool {
	_, ok := genderNames[g]
	return ok
}

func (g Gender) String() string {
	if name, ok := genderNames[g]; ok {
		return name
	}
	return fmt.Sprintf("gender(%d)", int(g))
}

// ParseGender accepts either the lowercase name or nothing at all.
func ParseGender(raw string) (Gender, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return GenderUndefined, nil
	}
	for g, name := range genderNames {
		if name == raw {
			return g, nil
		}
	}
	return GenderUndefined, fmt.Errorf("unknown gender %q", raw)
}

func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON takes the name or the numeric code.
func (g *Gender) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if !Gender(n).Valid() {
			return fmt.Errorf("unknown gender %d", n)
		}
		*g = Gender(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseGender(raw)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

type Location struct {
	Name      string  `gorm:"column:name" json:"name"`
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
}

// Rebel is a registered actor. Name is the immutable identity; Version is
// bumped by every committed change to the rebel's inventory or accusation
// count and guards negotiation commits against stale reads.
type Rebel struct {
	Name     string   `gorm:"primaryKey;column:name" json:"name"`
	Age      int      `gorm:"column:age;not null" json:"age"`
	Gender   Gender   `gorm:"column:gender;not null;default:0" json:"gender"`
	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	Version int `gorm:"column:version;not null;default:0" json:"version"`

	// references names the column: the Go field Name also matches Location.Name.
	Inventory []Item `gorm:"foreignKey:OwnerName;references:name" json:"inventory,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Rebel) TableName() string { return "rebels" }
