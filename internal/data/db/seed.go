package db

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

//go:embed seed.yaml
var defaultSeed []byte

//go:embed seed.schema.json
var seedSchemaRaw []byte

const seedSchemaURL = "seed.schema.json"

type SeedItem struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

type SeedLocation struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type SeedRebel struct {
	Name      string       `yaml:"name"`
	Age       int          `yaml:"age"`
	Gender    string       `yaml:"gender"`
	Location  SeedLocation `yaml:"location"`
	Inventory []SeedItem   `yaml:"inventory"`
}

type SeedTemplate struct {
	Name   string `yaml:"name"`
	Points int    `yaml:"points"`
}

type SeedReport struct {
	Accuser string `yaml:"accuser"`
	Accused string `yaml:"accused"`
}

type SeedData struct {
	ItemTemplates  []SeedTemplate `yaml:"item_templates"`
	Rebels         []SeedRebel    `yaml:"rebels"`
	TreasonReports []SeedReport   `yaml:"treason_reports"`
}

// DefaultSeed returns the embedded reference data.
func DefaultSeed() []byte {
	return append([]byte(nil), defaultSeed...)
}

func compileSeedSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(seedSchemaURL, bytes.NewReader(seedSchemaRaw)); err != nil {
		return nil, err
	}
	return c.Compile(seedSchemaURL)
}

// ParseSeed decodes YAML seed data, validates its shape against the embedded
// JSON schema and checks that every reference resolves.
func ParseSeed(raw []byte) (*SeedData, error) {
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("seed yaml: %w", err)
	}
	// Normalize through JSON so the validator sees plain JSON values.
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("seed to json: %w", err)
	}
	var doc any
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return nil, fmt.Errorf("seed json: %w", err)
	}
	schema, err := compileSeedSchema()
	if err != nil {
		return nil, fmt.Errorf("seed schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("seed invalid: %w", err)
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("seed decode: %w", err)
	}
	if err := data.checkReferences(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *SeedData) checkReferences() error {
	templates := map[string]bool{}
	for _, t := range d.ItemTemplates {
		templates[t.Name] = true
	}
	rebels := map[string]bool{}
	for _, r := range d.Rebels {
		if rebels[r.Name] {
			return fmt.Errorf("seed: duplicate rebel %q", r.Name)
		}
		rebels[r.Name] = true
		if _, err := types.ParseGender(r.Gender); err != nil {
			return fmt.Errorf("seed: rebel %q: %w", r.Name, err)
		}
		for _, it := range r.Inventory {
			if !templates[it.Name] {
				return fmt.Errorf("seed: rebel %q holds unknown item %q", r.Name, it.Name)
			}
		}
	}
	for _, rep := range d.TreasonReports {
		if !rebels[rep.Accuser] || !rebels[rep.Accused] {
			return fmt.Errorf("seed: report %q -> %q references unknown rebel", rep.Accuser, rep.Accused)
		}
	}
	return nil
}

// Seed inserts the reference data in one transaction. Rows that already
// exist are left alone, so seeding an existing database is a no-op.
func Seed(ctx context.Context, db *gorm.DB, log *logger.Logger, data *SeedData) error {
	if data == nil {
		return nil
	}
	seedLog := log.With("service", "Seeder")
	now := time.Now().UTC()

	var createdRebels, createdReports int
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(data.ItemTemplates) > 0 {
			rows := make([]*types.ItemTemplate, 0, len(data.ItemTemplates))
			for _, t := range data.ItemTemplates {
				rows = append(rows, &types.ItemTemplate{Name: t.Name, Points: t.Points})
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed templates: %w", err)
			}
		}

		for _, r := range data.Rebels {
			gender, _ := types.ParseGender(r.Gender)
			row := &types.Rebel{
				Name:   r.Name,
				Age:    r.Age,
				Gender: gender,
				Location: types.Location{
					Name:      r.Location.Name,
					Latitude:  r.Location.Latitude,
					Longitude: r.Location.Longitude,
				},
				CreatedAt: now,
				UpdatedAt: now,
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(row)
			if res.Error != nil {
				return fmt.Errorf("seed rebel %q: %w", r.Name, res.Error)
			}
			if res.RowsAffected == 0 {
				continue
			}
			createdRebels++

			merged := map[string]int{}
			order := []string{}
			for _, it := range r.Inventory {
				if _, ok := merged[it.Name]; !ok {
					order = append(order, it.Name)
				}
				merged[it.Name] += it.Quantity
			}
			for _, name := range order {
				if merged[name] <= 0 {
					continue
				}
				item := &types.Item{OwnerName: r.Name, TemplateName: name, Quantity: merged[name], CreatedAt: now, UpdatedAt: now}
				if err := tx.Create(item).Error; err != nil {
					return fmt.Errorf("seed item %q for %q: %w", name, r.Name, err)
				}
			}
		}

		for _, rep := range data.TreasonReports {
			row := &types.TreasonReport{AccuserName: rep.Accuser, AccusedName: rep.Accused, ReportCount: 1, CreatedAt: now, UpdatedAt: now}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
			if res.Error != nil {
				return fmt.Errorf("seed report %q -> %q: %w", rep.Accuser, rep.Accused, res.Error)
			}
			createdReports += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return err
	}
	seedLog.Info("seed applied", "rebels_created", createdRebels, "reports_created", createdReports, "templates", len(data.ItemTemplates))
	return nil
}
