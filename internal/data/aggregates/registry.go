package aggregates

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/forcebook-backend/internal/data/repos"
	types "github.com/yungbote/forcebook-backend/internal/domain"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

const (
	opRegister       = "rebels.registry.register"
	opUpdateLocation = "rebels.registry.update_location"
)

type RegistryAggregateDeps struct {
	Base      BaseDeps
	Rebels    repos.RebelRepo
	Items     repos.ItemRepo
	Templates repos.ItemTemplateRepo
}

type registryAggregate struct {
	deps RegistryAggregateDeps
	log  *logger.Logger
}

func NewRegistryAggregate(deps RegistryAggregateDeps) domainagg.RegistryAggregate {
	deps.Base = deps.Base.withDefaults()
	return &registryAggregate{
		deps: deps,
		log:  deps.Base.Log.With("aggregate", "RegistryAggregate"),
	}
}

func (a *registryAggregate) Contract() domainagg.Contract {
	return domainagg.RegistryAggregateContract
}

func (a *registryAggregate) Register(ctx context.Context, in domainagg.RegisterInput) (domainagg.RegisterResult, error) {
	start := time.Now()
	name := strings.TrimSpace(in.Name)
	loc := in.Location
	loc.Name = strings.TrimSpace(loc.Name)

	var problem string
	switch {
	case name == "":
		problem = "rebel name is required"
	case in.Age < 0:
		problem = "age must not be negative"
	case !in.Gender.Valid():
		problem = "unknown gender " + in.Gender.String()
	case loc.Name == "":
		problem = "location name is required"
	}
	if problem != "" {
		return domainagg.RegisterResult{}, rejectRead(a.deps.Base, opRegister, ValidationError(problem), start)
	}

	entries := make([]barter.Entry, 0, len(in.Inventory))
	for _, it := range in.Inventory {
		entries = append(entries, barter.Entry{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity})
	}
	merged, err := barter.Merge(entries)
	if err != nil {
		return domainagg.RegisterResult{}, rejectRead(a.deps.Base, opRegister, err, start)
	}

	at := in.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	unlock := a.deps.Base.Locks.Lock(name)
	defer unlock()

	var out domainagg.RegisterResult
	err = executeWrite(ctx, a.deps.Base, opRegister, func(dbc dbctx.Context) error {
		exists, err := a.deps.Rebels.Exists(dbc, name)
		if err != nil {
			return err
		}
		if exists {
			return barter.DuplicateRebel(name)
		}

		names := make([]string, 0, len(merged))
		for _, e := range merged {
			names = append(names, e.Name)
		}
		templates, err := a.deps.Templates.GetByNames(dbc, names)
		if err != nil {
			return err
		}
		catalog := barter.CatalogOf(templates)
		for _, e := range merged {
			if _, ok := catalog.Points(e.Name); !ok {
				return barter.UnknownItemType(e.Name)
			}
		}

		row := &types.Rebel{
			Name:      name,
			Age:       in.Age,
			Gender:    in.Gender,
			Location:  loc,
			CreatedAt: at,
			UpdatedAt: at,
		}
		if _, err := a.deps.Rebels.Create(dbc, []*types.Rebel{row}); err != nil {
			return err
		}
		for _, e := range merged {
			if err := a.deps.Items.Credit(dbc, name, e.Name, e.Quantity); err != nil {
				return err
			}
			row.Inventory = append(row.Inventory, types.Item{OwnerName: name, TemplateName: e.Name, Quantity: e.Quantity})
		}

		out = domainagg.RegisterResult{Rebel: row, Inventory: toTradeItems(merged)}
		return nil
	})
	if err != nil {
		return domainagg.RegisterResult{}, err
	}
	a.log.Info("rebel registered", "rebel", name, "items", len(merged))
	return out, nil
}

// UpdateLocation moves a rebel's base. It leaves Version alone: location
// never takes part in a negotiation.
func (a *registryAggregate) UpdateLocation(ctx context.Context, in domainagg.UpdateLocationInput) (domainagg.UpdateLocationResult, error) {
	start := time.Now()
	name := strings.TrimSpace(in.Name)
	loc := in.Location
	loc.Name = strings.TrimSpace(loc.Name)
	if name == "" || loc.Name == "" {
		return domainagg.UpdateLocationResult{}, rejectRead(a.deps.Base, opUpdateLocation, ValidationError("rebel name and location name are required"), start)
	}

	unlock := a.deps.Base.Locks.Lock(name)
	defer unlock()

	err := executeWrite(ctx, a.deps.Base, opUpdateLocation, func(dbc dbctx.Context) error {
		ok, err := a.deps.Rebels.UpdateLocation(dbc, name, loc)
		if err != nil {
			return err
		}
		if !ok {
			return barter.UnknownActor(name)
		}
		return nil
	})
	if err != nil {
		return domainagg.UpdateLocationResult{}, err
	}
	return domainagg.UpdateLocationResult{Name: name, Location: loc}, nil
}
