package entity

import (
	"time"

	"github.com/google/uuid"
)

// SaleState representa el estado de una venta
type SaleState string

const (
	SaleStateIdle    SaleState = "IDLE" // sin venta activa en la caja
	SaleStateStarted SaleState = "STARTED"
	SaleStateEnded   SaleState = "ENDED"
	SaleStatePaid    SaleState = "PAID"
	SaleStateSynced  SaleState = "SYNCED"
)

// DefaultCurrency se usa cuando la configuración no define una moneda
const DefaultCurrency = "SEK"

// Sale representa la venta en curso de una caja (Aggregate Root)
// Transiciones: STARTED -> ENDED -> PAID -> SYNCED
type Sale struct {
	ID        uuid.UUID
	Currency  string
	StartedAt time.Time
	EndedAt   *time.Time

	items        []LineItem
	enteredIDs   []int
	runningTotal Amount

	discountRequested bool
	discount          DiscountPolicy
	customerID        *int

	amountPaid Amount
	change     Amount
	state      SaleState

	inventoryPosted  bool
	accountingPosted bool
}

// NewSale crea una venta vacía con running total en cero
func NewSale(currency string) *Sale {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Sale{
		ID:           uuid.New(),
		Currency:     currency,
		StartedAt:    time.Now(),
		runningTotal: Zero(),
		discount:     NoDiscount(),
		amountPaid:   Zero(),
		change:       Zero(),
		state:        SaleStateStarted,
	}
}

func (s *Sale) State() SaleState { return s.state }

// RunningTotal es la suma de subtotales antes de descuento
func (s *Sale) RunningTotal() Amount { return s.runningTotal }

// Items retorna una copia de los items de la venta
func (s *Sale) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// EnteredIDs retorna los item_id ingresados, en orden
func (s *Sale) EnteredIDs() []int {
	out := make([]int, len(s.enteredIDs))
	copy(out, s.enteredIDs)
	return out
}

func (s *Sale) TotalItems() int { return len(s.items) }

// AddItem agrega un item y recalcula el running total (DDD: modificar aggregate)
func (s *Sale) AddItem(item ItemInfo, quantity int) (*LineItem, error) {
	if s.state != SaleStateStarted {
		return nil, ErrSaleNotOpen
	}
	line, err := NewLineItem(item, quantity)
	if err != nil {
		return nil, err
	}
	s.enteredIDs = append(s.enteredIDs, item.ItemID)
	s.items = append(s.items, *line)
	s.runningTotal = s.runningTotal.Add(line.Subtotal)
	return line, nil
}

// End cierra la venta con el running total capturado en el último PurchaseInfo
// y retorna el monto a pagar
func (s *Sale) End(capturedTotal Amount) (Amount, error) {
	if s.state != SaleStateStarted {
		return Amount{}, ErrSaleNotOpen
	}
	if len(s.items) == 0 {
		return Amount{}, ErrSaleHasNoItems
	}
	if !capturedTotal.Equal(s.runningTotal) {
		return Amount{}, ErrStalePurchaseInfo
	}
	now := time.Now()
	s.EndedAt = &now
	s.state = SaleStateEnded
	return s.PayableAmount(), nil
}

// RequestDiscount marca la venta con un pedido de descuento pendiente
func (s *Sale) RequestDiscount() error {
	if s.state != SaleStateStarted && s.state != SaleStateEnded {
		return ErrSaleAlreadyPaid
	}
	s.discountRequested = true
	return nil
}

func (s *Sale) DiscountRequested() bool { return s.discountRequested }

// ApplyDiscount fija la política de descuento del cliente y consume el pedido pendiente
func (s *Sale) ApplyDiscount(customerID int, policy DiscountPolicy) (Amount, error) {
	if !s.discountRequested {
		return Amount{}, ErrNoDiscountRequest
	}
	if s.state != SaleStateStarted && s.state != SaleStateEnded {
		return Amount{}, ErrSaleAlreadyPaid
	}
	id := customerID
	s.customerID = &id
	s.discount = policy
	s.discountRequested = false
	return s.PayableAmount(), nil
}

func (s *Sale) Discount() DiscountPolicy { return s.discount }

func (s *Sale) CustomerID() *int { return s.customerID }

// DiscountAmount es lo que la política descuenta del running total actual
func (s *Sale) DiscountAmount() Amount {
	discount, _ := s.discount.Apply(s.runningTotal)
	return discount
}

// PayableAmount es el running total luego del descuento, nunca negativo
func (s *Sale) PayableAmount() Amount {
	_, payable := s.discount.Apply(s.runningTotal)
	return payable
}

// RecordPayment registra el pago y el vuelto calculados por la caja
func (s *Sale) RecordPayment(payment, change Amount) error {
	switch s.state {
	case SaleStateEnded:
	case SaleStateStarted:
		return ErrSaleNotEnded
	default:
		return ErrSaleAlreadyPaid
	}
	s.amountPaid = payment
	s.change = change
	s.state = SaleStatePaid
	return nil
}

func (s *Sale) AmountPaid() Amount { return s.amountPaid }
func (s *Sale) Change() Amount     { return s.change }

func (s *Sale) InventoryPosted() bool  { return s.inventoryPosted }
func (s *Sale) AccountingPosted() bool { return s.accountingPosted }

func (s *Sale) MarkInventoryPosted()  { s.inventoryPosted = true }
func (s *Sale) MarkAccountingPosted() { s.accountingPosted = true }

// MarkSynced cierra el ciclo de la venta una vez que ambos sistemas externos la recibieron
func (s *Sale) MarkSynced() error {
	if s.state != SaleStatePaid {
		return ErrSaleNotPaid
	}
	if !s.inventoryPosted || !s.accountingPosted {
		return ErrExternalSyncIncomplete
	}
	s.state = SaleStateSynced
	return nil
}

// Log retorna la proyección de solo lectura usada por recibo, inventario y contabilidad
func (s *Sale) Log() *SaleLog {
	discount, payable := s.discount.Apply(s.runningTotal)
	return &SaleLog{
		SaleID:         s.ID,
		Currency:       s.Currency,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		State:          s.state,
		Items:          s.Items(),
		EnteredIDs:     s.EnteredIDs(),
		RunningTotal:   s.runningTotal,
		DiscountName:   s.discount.Name,
		DiscountAmount: discount,
		PayableAmount:  payable,
		AmountPaid:     s.amountPaid,
		Change:         s.change,
		CustomerID:     s.customerID,
	}
}
