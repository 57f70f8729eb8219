package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
)

type ItemView struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type RebelView struct {
	Name       string         `json:"name"`
	Age        int            `json:"age"`
	Gender     types.Gender   `json:"gender"`
	Base       types.Location `json:"base"`
	Inventory  []ItemView     `json:"inventory"`
	ReportedBy []string       `json:"reportedBy"`
	Traitor    bool           `json:"traitor"`
}

type LocationView struct {
	Name     string         `json:"name"`
	Location types.Location `json:"location"`
}

type TreasonView struct {
	Name       string   `json:"name"`
	ReportedBy []string `json:"reportedBy"`
	IsTraitor  bool     `json:"isTraitor"`
}

type LegView struct {
	Name  string     `json:"name"`
	Items []ItemView `json:"items"`
}

// NegotiationView carries both parties' inventories after the commit.
type NegotiationView struct {
	ID     uuid.UUID `json:"id"`
	Points int       `json:"points"`
	LegA   LegView   `json:"legA"`
	LegB   LegView   `json:"legB"`
	At     time.Time `json:"at"`
}

type NegotiationRecordView struct {
	ID     uuid.UUID  `json:"id"`
	RebelA string     `json:"rebelA"`
	RebelB string     `json:"rebelB"`
	ItemsA []ItemView `json:"itemsA"`
	ItemsB []ItemView `json:"itemsB"`
	Points int        `json:"points"`
	At     time.Time  `json:"at"`
}

type ItemAverage struct {
	Name string  `json:"name"`
	Avg  float64 `json:"avg"`
}

type Summary struct {
	Rebels          int64         `json:"rebels"`
	Traitors        int           `json:"traitors"`
	TraitorsRate    float64       `json:"traitorsRate"`
	NonTraitorsRate float64       `json:"nonTraitorsRate"`
	AverageItems    []ItemAverage `json:"avgItem"`
	TraitorsPoints  int64         `json:"traitorsPoints"`
}

type RegisterRebelRequest struct {
	Name      string         `json:"name"`
	Age       int            `json:"age"`
	Gender    types.Gender   `json:"gender"`
	Location  types.Location `json:"location"`
	Inventory []ItemView     `json:"inventory"`
}

type UpdateLocationRequest struct {
	Name     string         `json:"name"`
	Location types.Location `json:"location"`
}

type ReportTreasonRequest struct {
	Accuser string `json:"accuser"`
	Accused string `json:"accused"`
}

type NegotiationLeg struct {
	Name  string     `json:"name"`
	Items []ItemView `json:"items"`
}

type NegotiateRequest struct {
	LegA NegotiationLeg `json:"legA"`
	LegB NegotiationLeg `json:"legB"`
}

func itemViews(in []domainagg.TradeItem) []ItemView {
	out := make([]ItemView, 0, len(in))
	for _, it := range in {
		out = append(out, ItemView{Name: it.Name, Quantity: it.Quantity})
	}
	return out
}

func tradeItems(in []ItemView) []domainagg.TradeItem {
	out := make([]domainagg.TradeItem, 0, len(in))
	for _, it := range in {
		out = append(out, domainagg.TradeItem{Name: it.Name, Quantity: it.Quantity})
	}
	return out
}

func inventoryView(items []types.Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			out = append(out, ItemView{Name: it.TemplateName, Quantity: it.Quantity})
		}
	}
	return out
}

func rebelView(r *types.Rebel, accusers []string, reports int) RebelView {
	if accusers == nil {
		accusers = []string{}
	}
	return RebelView{
		Name:       r.Name,
		Age:        r.Age,
		Gender:     r.Gender,
		Base:       r.Location,
		Inventory:  inventoryView(r.Inventory),
		ReportedBy: accusers,
		Traitor:    reports >= types.TraitorThreshold,
	}
}

func recordView(r *types.NegotiationRecord) (NegotiationRecordView, error) {
	out := NegotiationRecordView{
		ID:     r.ID,
		RebelA: r.RebelA,
		RebelB: r.RebelB,
		ItemsA: []ItemView{},
		ItemsB: []ItemView{},
		Points: r.Points,
		At:     r.CreatedAt,
	}
	if len(r.ItemsA) > 0 {
		if err := json.Unmarshal(r.ItemsA, &out.ItemsA); err != nil {
			return out, err
		}
	}
	if len(r.ItemsB) > 0 {
		if err := json.Unmarshal(r.ItemsB, &out.ItemsB); err != nil {
			return out, err
		}
	}
	return out, nil
}
