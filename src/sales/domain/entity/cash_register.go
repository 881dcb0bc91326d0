package entity

// CashRegister valida pagos y calcula el vuelto. Lleva el balance del cajón
type CashRegister struct {
	balance Amount
}

func NewCashRegister() *CashRegister {
	return &CashRegister{balance: Zero()}
}

// AddPayment retorna payment - totalPrice. Nunca retorna vuelto negativo
func (c *CashRegister) AddPayment(payment, totalPrice Amount) (Amount, error) {
	if payment.IsNegative() || totalPrice.IsNegative() {
		return Amount{}, ErrInvalidAmount
	}
	if payment.LessThan(totalPrice) {
		return Amount{}, ErrInsufficientPayment
	}
	c.balance = c.balance.Add(totalPrice)
	return payment.Sub(totalPrice), nil
}

// Balance es el dinero acumulado en el cajón por las ventas cobradas
func (c *CashRegister) Balance() Amount {
	return c.balance
}
