package services

import (
	"context"
	"math"
	"testing"
)

func TestReportsWithNoRebels(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	rate, err := f.reports.TraitorsRate(ctx)
	if err != nil || rate != 0 {
		t.Fatalf("TraitorsRate: rate=%v err=%v", rate, err)
	}
	rate, err = f.reports.NonTraitorsRate(ctx)
	if err != nil || rate != 0 {
		t.Fatalf("NonTraitorsRate: rate=%v err=%v", rate, err)
	}
	avgs, err := f.reports.AverageItems(ctx)
	if err != nil {
		t.Fatalf("AverageItems: %v", err)
	}
	for _, a := range avgs {
		if a.Avg != 0 || math.IsNaN(a.Avg) {
			t.Fatalf("empty population average: %+v", a)
		}
	}
	points, err := f.reports.TraitorsPoints(ctx)
	if err != nil || points != 0 {
		t.Fatalf("TraitorsPoints: points=%v err=%v", points, err)
	}
}

func seedPopulation(t *testing.T, f *serviceFixture) {
	t.Helper()
	f.rebel(t, "Luke", map[string]int{"Weapon": 2, "Food": 4})
	f.rebel(t, "Leia", map[string]int{"Water": 6})
	f.rebel(t, "Han", map[string]int{"Ammo": 3})
	f.rebel(t, "Boba", map[string]int{"Weapon": 5, "Ammo": 1})
	f.report(t, "Luke", "Boba", 2)
	f.report(t, "Leia", "Boba", 1)
}

func TestReports(t *testing.T) {
	f := newServiceFixture(t)
	seedPopulation(t, f)
	ctx := context.Background()

	rate, err := f.reports.TraitorsRate(ctx)
	if err != nil || rate != 25 {
		t.Fatalf("TraitorsRate: want=25 got=%v err=%v", rate, err)
	}
	rate, err = f.reports.NonTraitorsRate(ctx)
	if err != nil || rate != 75 {
		t.Fatalf("NonTraitorsRate: want=75 got=%v err=%v", rate, err)
	}

	avgs, err := f.reports.AverageItems(ctx)
	if err != nil {
		t.Fatalf("AverageItems: %v", err)
	}
	want := map[string]float64{"Weapon": 0.5, "Ammo": 0.75, "Water": 1.5, "Food": 1}
	if len(avgs) != len(want) {
		t.Fatalf("one average per catalog item: %+v", avgs)
	}
	for _, a := range avgs {
		if a.Avg != want[a.Name] {
			t.Fatalf("avg %s: want=%v got=%v", a.Name, want[a.Name], a.Avg)
		}
	}

	points, err := f.reports.TraitorsPoints(ctx)
	if err != nil || points != 23 {
		t.Fatalf("TraitorsPoints: want=23 got=%v err=%v", points, err)
	}
}

func TestSummaryMatchesIndividualReports(t *testing.T) {
	f := newServiceFixture(t)
	seedPopulation(t, f)

	s, err := f.reports.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.Rebels != 4 || s.Traitors != 1 {
		t.Fatalf("population: %+v", s)
	}
	if s.TraitorsRate != 25 || s.NonTraitorsRate != 75 || s.TraitorsPoints != 23 {
		t.Fatalf("summary: %+v", s)
	}
	if len(s.AverageItems) != 4 {
		t.Fatalf("summary averages: %+v", s.AverageItems)
	}
}
