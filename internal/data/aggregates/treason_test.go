package aggregates

import (
	"context"
	"testing"

	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
)

func TestReportTreasonCountsRepeatsTowardThreshold(t *testing.T) {
	f := newRebelFixture(t)
	for _, name := range []string{"Luke", "Leia", "Boba"} {
		f.rebel(t, name, nil)
	}
	ctx := context.Background()
	report := func(accuser string) domainagg.ReportTreasonResult {
		t.Helper()
		res, err := f.treason.Report(ctx, domainagg.ReportTreasonInput{Accuser: accuser, Accused: "Boba"})
		if err != nil {
			t.Fatalf("Report(%s): %v", accuser, err)
		}
		return res
	}

	first := report("Luke")
	if first.PairCount != 1 || first.TotalReports != 1 || first.Traitor {
		t.Fatalf("first report: %+v", first)
	}
	second := report("Luke")
	if second.PairCount != 2 || second.TotalReports != 2 || second.Traitor {
		t.Fatalf("repeat report: %+v", second)
	}
	third := report("Leia")
	if !third.Traitor || !third.BecameTraitor || third.TotalReports != 3 {
		t.Fatalf("third report should cross the threshold: %+v", third)
	}
	if len(third.Accusers) != 2 || third.Accusers[0] != "Luke" || third.Accusers[1] != "Leia" {
		t.Fatalf("accusers: %v", third.Accusers)
	}
	fourth := report("Leia")
	if !fourth.Traitor || fourth.BecameTraitor {
		t.Fatalf("already a traitor: %+v", fourth)
	}
	if v := f.version(t, "Boba"); v != 4 {
		t.Fatalf("each report bumps the accused version: want=4 got=%d", v)
	}
}

func TestReportTreasonAllowsSelfAccusation(t *testing.T) {
	f := newRebelFixture(t)
	f.rebel(t, "Chewbacca", nil)
	res, err := f.treason.Report(context.Background(), domainagg.ReportTreasonInput{Accuser: "Chewbacca", Accused: "Chewbacca"})
	if err != nil || res.TotalReports != 1 {
		t.Fatalf("self report: res=%+v err=%v", res, err)
	}
}

func TestReportTreasonRejectsUnknownRebels(t *testing.T) {
	f := newRebelFixture(t)
	f.rebel(t, "Luke", nil)
	ctx := context.Background()

	_, err := f.treason.Report(ctx, domainagg.ReportTreasonInput{Accuser: "Greedo", Accused: "Luke"})
	if !barter.IsKind(err, barter.KindUnknownActor) || !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("unknown accuser: %v", err)
	}
	if domainagg.MessageOf(err) != "Unable to find rebel named Greedo." {
		t.Fatalf("message: %q", domainagg.MessageOf(err))
	}
	_, err = f.treason.Report(ctx, domainagg.ReportTreasonInput{Accuser: "Luke", Accused: "Greedo"})
	if !barter.IsKind(err, barter.KindUnknownActor) {
		t.Fatalf("unknown accused: %v", err)
	}
	_, err = f.treason.Report(ctx, domainagg.ReportTreasonInput{Accuser: " ", Accused: "Luke"})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("blank accuser: %v", err)
	}
}
