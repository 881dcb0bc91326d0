package entity

// ItemInfo es lo que el catálogo devuelve para un item_id
type ItemInfo struct {
	ItemID      int    `json:"item_id"`
	Description string `json:"description"`
	UnitPrice   Amount `json:"unit_price"`
}

// LineItem representa un item dentro de una venta (Entity dentro del Aggregate)
// Inmutable una vez agregado a la venta
type LineItem struct {
	ItemID      int    `json:"item_id"`
	Description string `json:"description"`
	UnitPrice   Amount `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    Amount `json:"subtotal"`
}

// NewLineItem crea un nuevo item de venta a partir de la info del catálogo
// Validaciones mínimas, cálculo de subtotal
func NewLineItem(item ItemInfo, quantity int) (*LineItem, error) {
	if item.Description == "" {
		return nil, ErrDescriptionRequired
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if item.UnitPrice.IsNegative() {
		return nil, ErrInvalidPrice
	}

	return &LineItem{
		ItemID:      item.ItemID,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		Quantity:    quantity,
		Subtotal:    item.UnitPrice.Mul(quantity),
	}, nil
}
