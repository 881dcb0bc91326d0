package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount representa un valor monetario exacto (Value Object)
// Se copia libremente, ninguna operación modifica el receptor
type Amount struct {
	value decimal.Decimal
}

// Zero retorna el monto cero
func Zero() Amount {
	return Amount{value: decimal.Zero}
}

// NewAmount parsea un monto decimal, por ejemplo "10.50"
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

// MustAmount es como NewAmount pero hace panic ante un literal inválido
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromInt crea un monto entero
func AmountFromInt(v int64) Amount {
	return Amount{value: decimal.NewFromInt(v)}
}

// AmountFromDecimal adapta un decimal.Decimal existente
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{value: d}
}

func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Sub puede retornar un monto negativo
func (a Amount) Sub(other Amount) Amount {
	return Amount{value: a.value.Sub(other.value)}
}

func (a Amount) Mul(quantity int) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Percent retorna pct % del monto, sin redondear
func (a Amount) Percent(pct decimal.Decimal) Amount {
	return Amount{value: a.value.Mul(pct).Div(decimal.NewFromInt(100))}
}

func (a Amount) Equal(other Amount) bool       { return a.value.Equal(other.value) }
func (a Amount) LessThan(other Amount) bool    { return a.value.LessThan(other.value) }
func (a Amount) GreaterThan(other Amount) bool { return a.value.GreaterThan(other.value) }
func (a Amount) IsZero() bool                  { return a.value.IsZero() }
func (a Amount) IsNegative() bool              { return a.value.IsNegative() }

// Cmp retorna -1, 0 o 1
func (a Amount) Cmp(other Amount) int {
	return a.value.Cmp(other.value)
}

// String formatea con dos decimales (centavos)
func (a Amount) String() string {
	return a.value.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.value.UnmarshalJSON(data)
}

// RoundCents redondea a centavos (half-up)
func (a Amount) RoundCents() Amount {
	return Amount{value: a.value.Round(2)}
}
