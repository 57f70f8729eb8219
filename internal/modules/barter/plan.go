package barter

import "github.com/yungbote/forcebook-backend/internal/domain"

// Party is a resolved negotiation participant as read before commit.
type Party struct {
	Name        string
	Exists      bool
	ReportCount int
	Version     int
	Holdings    *Ledger
}

func (p Party) Traitor() bool { return p.ReportCount >= domain.TraitorThreshold }

// Resolver loads a party by name. A party that does not exist is returned
// with Exists=false rather than an error; errors are infrastructure failures.
type Resolver func(name string) (Party, error)

// Plan is the immutable outcome of a successful evaluation. Commit applies
// exactly this plan or nothing.
type Plan struct {
	A     Party
	B     Party
	LegA  ValidLeg
	LegB  ValidLeg
	Price int
}

// Evaluate runs every read-only check of a negotiation in a fixed order:
// resolve A, eligibility of A, resolve B, eligibility of B, validate leg A,
// validate leg B, compare points. The first failure is returned as is.
func Evaluate(resolve Resolver, catalog Catalog, legA, legB Leg) (Plan, error) {
	a, err := resolveEligible(resolve, legA.Rebel)
	if err != nil {
		return Plan{}, err
	}
	b, err := resolveEligible(resolve, legB.Rebel)
	if err != nil {
		return Plan{}, err
	}
	if a.Name == b.Name {
		return Plan{}, SelfNegotiation(a.Name)
	}

	va, err := ValidateLeg(a.Name, legA.Items, a.Holdings, catalog)
	if err != nil {
		return Plan{}, err
	}
	vb, err := ValidateLeg(b.Name, legB.Items, b.Holdings, catalog)
	if err != nil {
		return Plan{}, err
	}
	if va.Points != vb.Points {
		return Plan{}, PointMismatch(a.Name, va.Points, b.Name, vb.Points)
	}
	return Plan{A: a, B: b, LegA: va, LegB: vb, Price: va.Points}, nil
}

func resolveEligible(resolve Resolver, name string) (Party, error) {
	p, err := resolve(name)
	if err != nil {
		return Party{}, err
	}
	if !p.Exists {
		return Party{}, UnknownActor(name)
	}
	if p.Traitor() {
		return Party{}, IneligibleParty(p.Name)
	}
	if p.Holdings == nil {
		p.Holdings = NewLedger(p.Name)
	}
	return p, nil
}

// Project applies the plan to copies of both ledgers and returns the
// expected post-commit holdings. The inputs are left untouched.
func (p Plan) Project() (*Ledger, *Ledger, error) {
	a := p.A.Holdings.Clone()
	b := p.B.Holdings.Clone()
	if err := transfer(a, b, p.LegA.Items); err != nil {
		return nil, nil, err
	}
	if err := transfer(b, a, p.LegB.Items); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func transfer(from, to *Ledger, items []Entry) error {
	for _, it := range items {
		if err := from.Debit(it.Name, it.Quantity); err != nil {
			return err
		}
		if err := to.Credit(it.Name, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}
