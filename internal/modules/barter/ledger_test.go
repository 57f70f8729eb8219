package barter

import "testing"

func TestLedgerDebitRemovesZeroHolding(t *testing.T) {
	l := NewLedger("Han Solo", Entry{Name: "Ammo", Quantity: 2})
	if err := l.Debit("Ammo", 2); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if l.Quantity("Ammo") != 0 || len(l.Entries()) != 0 {
		t.Fatalf("holding not removed: %+v", l.Entries())
	}
}

func TestLedgerDebitInsufficient(t *testing.T) {
	l := NewLedger("Han Solo", Entry{Name: "Ammo", Quantity: 1})
	err := l.Debit("Ammo", 2)
	if !IsKind(err, KindInsufficientOwnerStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if l.Quantity("Ammo") != 1 {
		t.Fatalf("failed debit mutated ledger")
	}
}

func TestLedgerCreditRequiresPositive(t *testing.T) {
	l := NewLedger("Chewbacca")
	if err := l.Credit("Food", 0); !IsKind(err, KindInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if err := l.Credit("Food", 3); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := l.Credit("Food", 2); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if l.Quantity("Food") != 5 {
		t.Fatalf("quantity: want=5 got=%d", l.Quantity("Food"))
	}
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	l := NewLedger("Chewbacca", Entry{Name: "Food", Quantity: 3})
	cp := l.Clone()
	if err := cp.Debit("Food", 3); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if l.Quantity("Food") != 3 {
		t.Fatalf("clone shares state with source")
	}
	if l.Equal(cp) {
		t.Fatalf("ledgers should differ")
	}
}
