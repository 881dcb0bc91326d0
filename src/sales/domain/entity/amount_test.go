package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmount_ArithmeticIsExact(t *testing.T) {
	sum := Zero()
	for i := 0; i < 10; i++ {
		sum = sum.Add(MustAmount("0.10"))
	}
	if !sum.Equal(MustAmount("1.00")) {
		t.Errorf("expected 1.00, got %s", sum)
	}

	diff := MustAmount("5.00").Sub(MustAmount("7.25"))
	if !diff.IsNegative() {
		t.Errorf("expected negative result, got %s", diff)
	}
	if diff.String() != "-2.25" {
		t.Errorf("expected -2.25, got %s", diff)
	}
}

func TestAmount_MulAndPercent(t *testing.T) {
	if got := MustAmount("10.00").Mul(3); !got.Equal(MustAmount("30")) {
		t.Errorf("expected 30.00, got %s", got)
	}
	if got := MustAmount("19.99").Percent(decimal.NewFromInt(10)); !got.Equal(MustAmount("1.999")) {
		t.Errorf("expected 1.999, got %s", got.Decimal())
	}
	if got := MustAmount("1.999").RoundCents(); !got.Equal(MustAmount("2.00")) {
		t.Errorf("expected 2.00, got %s", got)
	}
}

func TestAmount_Compare(t *testing.T) {
	a, b := MustAmount("1.50"), MustAmount("2")
	if !a.LessThan(b) || b.LessThan(a) {
		t.Error("expected 1.50 < 2")
	}
	if !b.GreaterThan(a) {
		t.Error("expected 2 > 1.50")
	}
	if a.Cmp(a) != 0 {
		t.Error("expected Cmp to be 0 for equal amounts")
	}
}

func TestNewAmount_Invalid(t *testing.T) {
	if _, err := NewAmount("ten"); err == nil {
		t.Error("expected error for invalid amount")
	}
}

func TestAmount_JSON(t *testing.T) {
	data, err := json.Marshal(MustAmount("12.30"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(MustAmount("12.30")) {
		t.Errorf("expected 12.30, got %s", back)
	}

	var fromNumber Amount
	if err := json.Unmarshal([]byte(`25.5`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if !fromNumber.Equal(MustAmount("25.50")) {
		t.Errorf("expected 25.50, got %s", fromNumber)
	}
}
