package entity

import (
	"errors"
	"testing"
)

func milk() ItemInfo {
	return ItemInfo{ItemID: 101, Description: "Milk 1L", UnitPrice: MustAmount("10.00")}
}

func bread() ItemInfo {
	return ItemInfo{ItemID: 202, Description: "Bread", UnitPrice: MustAmount("24.90")}
}

func TestSale_RunningTotalIsSumOfSubtotals(t *testing.T) {
	sale := NewSale("")

	entries := []struct {
		item     ItemInfo
		quantity int
	}{
		{milk(), 2},
		{bread(), 1},
		{milk(), 3},
	}

	expected := Zero()
	for _, e := range entries {
		if _, err := sale.AddItem(e.item, e.quantity); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		expected = expected.Add(e.item.UnitPrice.Mul(e.quantity))
		if !sale.RunningTotal().Equal(expected) {
			t.Errorf("expected running total %s, got %s", expected, sale.RunningTotal())
		}
	}

	if sale.TotalItems() != 3 {
		t.Errorf("expected 3 items, got %d", sale.TotalItems())
	}
	if got := sale.EnteredIDs(); len(got) != 3 || got[0] != 101 || got[1] != 202 {
		t.Errorf("unexpected entered ids %v", got)
	}
	if sale.Currency != DefaultCurrency {
		t.Errorf("expected default currency, got %s", sale.Currency)
	}
}

func TestSale_AddItemRejectsInvalidQuantity(t *testing.T) {
	sale := NewSale("SEK")
	for _, q := range []int{0, -1} {
		if _, err := sale.AddItem(milk(), q); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", q, err)
		}
	}
	if !sale.RunningTotal().IsZero() {
		t.Errorf("expected running total to stay zero, got %s", sale.RunningTotal())
	}
}

func TestSale_ItemsAreCopies(t *testing.T) {
	sale := NewSale("SEK")
	sale.AddItem(milk(), 1)

	items := sale.Items()
	items[0].Quantity = 99
	if sale.Items()[0].Quantity != 1 {
		t.Error("expected line items to be immutable from outside")
	}
}

func TestSale_EndClosesItemEntry(t *testing.T) {
	sale := NewSale("SEK")
	sale.AddItem(milk(), 2)

	due, err := sale.End(MustAmount("20.00"))
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if !due.Equal(MustAmount("20.00")) {
		t.Errorf("expected 20.00 due, got %s", due)
	}
	if sale.State() != SaleStateEnded || sale.EndedAt == nil {
		t.Errorf("expected ENDED with timestamp, got %s", sale.State())
	}

	if _, err := sale.AddItem(bread(), 1); !errors.Is(err, ErrSaleNotOpen) {
		t.Errorf("expected ErrSaleNotOpen, got %v", err)
	}
	if !errors.Is(ErrSaleNotOpen, ErrPreconditionViolated) {
		t.Error("expected ordering errors to be precondition violations")
	}
}

func TestSale_EndGuards(t *testing.T) {
	empty := NewSale("SEK")
	if _, err := empty.End(Zero()); !errors.Is(err, ErrSaleHasNoItems) {
		t.Errorf("expected ErrSaleHasNoItems, got %v", err)
	}

	sale := NewSale("SEK")
	sale.AddItem(milk(), 1)
	if _, err := sale.End(MustAmount("5.00")); !errors.Is(err, ErrStalePurchaseInfo) {
		t.Errorf("expected ErrStalePurchaseInfo, got %v", err)
	}
}

func TestSale_PaymentFlow(t *testing.T) {
	sale := NewSale("SEK")
	sale.AddItem(milk(), 2)

	if err := sale.RecordPayment(MustAmount("25"), MustAmount("5")); !errors.Is(err, ErrSaleNotEnded) {
		t.Errorf("expected ErrSaleNotEnded, got %v", err)
	}

	sale.End(MustAmount("20"))
	if err := sale.RecordPayment(MustAmount("25"), MustAmount("5")); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if sale.State() != SaleStatePaid {
		t.Errorf("expected PAID, got %s", sale.State())
	}
	if err := sale.RecordPayment(MustAmount("25"), MustAmount("5")); !errors.Is(err, ErrSaleAlreadyPaid) {
		t.Errorf("expected ErrSaleAlreadyPaid, got %v", err)
	}
	if err := sale.RequestDiscount(); !errors.Is(err, ErrSaleAlreadyPaid) {
		t.Errorf("expected discount to be rejected after payment, got %v", err)
	}
}

func TestSale_MarkSyncedRequiresBothSystems(t *testing.T) {
	sale := NewSale("SEK")
	sale.AddItem(milk(), 1)
	sale.End(MustAmount("10"))
	sale.RecordPayment(MustAmount("10"), Zero())

	sale.MarkInventoryPosted()
	if err := sale.MarkSynced(); !errors.Is(err, ErrExternalSyncIncomplete) {
		t.Errorf("expected ErrExternalSyncIncomplete, got %v", err)
	}
	sale.MarkAccountingPosted()
	if err := sale.MarkSynced(); err != nil {
		t.Fatalf("MarkSynced failed: %v", err)
	}
	if sale.State() != SaleStateSynced {
		t.Errorf("expected SYNCED, got %s", sale.State())
	}
}

func TestSale_Log(t *testing.T) {
	sale := NewSale("SEK")
	sale.AddItem(milk(), 2)
	sale.RequestDiscount()
	if _, err := sale.ApplyDiscount(550001, DefaultDiscountRules().byPrefix[PrefixVIP]); err != nil {
		t.Fatalf("ApplyDiscount failed: %v", err)
	}

	log := sale.Log()
	if log.SaleID != sale.ID {
		t.Error("expected log to carry the sale id")
	}
	if !log.RunningTotal.Equal(MustAmount("20")) {
		t.Errorf("expected running total 20, got %s", log.RunningTotal)
	}
	if !log.DiscountAmount.Equal(MustAmount("3")) || !log.PayableAmount.Equal(MustAmount("17")) {
		t.Errorf("expected discount 3 and payable 17, got %s and %s", log.DiscountAmount, log.PayableAmount)
	}
	if log.CustomerID == nil || *log.CustomerID != 550001 {
		t.Errorf("expected customer id 550001, got %v", log.CustomerID)
	}
	if log.TotalItems() != 1 {
		t.Errorf("expected 1 line, got %d", log.TotalItems())
	}
}
