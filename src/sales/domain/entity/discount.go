package entity

import (
	"github.com/shopspring/decimal"
)

// DiscountKind identifica la categoría de cliente que habilita el descuento
type DiscountKind string

const (
	DiscountNone        DiscountKind = "none"
	DiscountNewCustomer DiscountKind = "new_customer"
	DiscountVIP         DiscountKind = "vip"
	DiscountPensioner   DiscountKind = "pensioner"
)

// Prefijos de customer_id (dos primeros dígitos de un id de 6 dígitos)
const (
	PrefixNewCustomer = 11
	PrefixVIP         = 55
	PrefixPensioner   = 99
)

// DiscountPolicy combina un porcentaje y una reducción fija sobre el running total
type DiscountPolicy struct {
	Kind    DiscountKind
	Name    string
	Percent decimal.Decimal
	Flat    Amount
}

// NoDiscount es la política neutra: payable == running total
func NoDiscount() DiscountPolicy {
	return DiscountPolicy{Kind: DiscountNone, Percent: decimal.Zero, Flat: Zero()}
}

// Apply calcula descuento y monto a pagar. El descuento no puede generar monto negativo
func (p DiscountPolicy) Apply(total Amount) (discount Amount, payable Amount) {
	discount = total.Percent(p.Percent).Add(p.Flat).RoundCents()
	if discount.IsNegative() {
		discount = Zero()
	}
	if discount.GreaterThan(total) {
		discount = total
	}
	return discount, total.Sub(discount)
}

// DiscountRules resuelve la política de descuento según el customer_id
type DiscountRules struct {
	byPrefix map[int]DiscountPolicy
}

// NewDiscountRules crea las reglas a partir de políticas indexadas por prefijo
func NewDiscountRules(policies map[int]DiscountPolicy) *DiscountRules {
	byPrefix := make(map[int]DiscountPolicy, len(policies))
	for prefix, p := range policies {
		byPrefix[prefix] = p
	}
	return &DiscountRules{byPrefix: byPrefix}
}

// DefaultDiscountRules: nuevo cliente 10%, VIP 15%, jubilado 20%
func DefaultDiscountRules() *DiscountRules {
	return NewDiscountRules(map[int]DiscountPolicy{
		PrefixNewCustomer: {Kind: DiscountNewCustomer, Name: "New customer discount", Percent: decimal.NewFromInt(10), Flat: Zero()},
		PrefixVIP:         {Kind: DiscountVIP, Name: "VIP discount", Percent: decimal.NewFromInt(15), Flat: Zero()},
		PrefixPensioner:   {Kind: DiscountPensioner, Name: "Pensioner discount", Percent: decimal.NewFromInt(20), Flat: Zero()},
	})
}

// PolicyFor retorna la política para el customer_id, NoDiscount si el prefijo no califica
func (r *DiscountRules) PolicyFor(customerID int) (DiscountPolicy, error) {
	if customerID < 100000 || customerID > 999999 {
		return DiscountPolicy{}, ErrInvalidCustomerID
	}
	if p, ok := r.byPrefix[customerID/10000]; ok {
		return p, nil
	}
	return NoDiscount(), nil
}

// CalculatePriceAfterDiscount aplica la regla a la venta y retorna el nuevo monto a pagar.
// No modifica los items de la venta
func (r *DiscountRules) CalculatePriceAfterDiscount(customerID int, sale *Sale) (Amount, error) {
	if !sale.DiscountRequested() {
		return Amount{}, ErrNoDiscountRequest
	}
	policy, err := r.PolicyFor(customerID)
	if err != nil {
		return Amount{}, err
	}
	return sale.ApplyDiscount(customerID, policy)
}
