package printer

import (
	"fmt"
	"strings"
	"time"

	"sales/src/sales/domain/entity"
)

const receiptWidth = 40

// TextReceiptRenderer formatea el recibo en texto plano de ancho fijo
type TextReceiptRenderer struct {
	storeName string
	location  *time.Location
}

func NewTextReceiptRenderer(storeName string, location *time.Location) *TextReceiptRenderer {
	if location == nil {
		location = time.Local
	}
	return &TextReceiptRenderer{storeName: storeName, location: location}
}

// Render arma el recibo. Los montos de pago y vuelto solo se muestran si la venta fue cobrada
func (r *TextReceiptRenderer) Render(sale *entity.SaleLog) (string, error) {
	if sale == nil {
		return "", fmt.Errorf("sale log is required")
	}

	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth)

	if r.storeName != "" {
		b.WriteString(center(r.storeName))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Sale: %s\n", sale.SaleID)
	fmt.Fprintf(&b, "Date: %s\n", sale.StartedAt.In(r.location).Format("2006-01-02 15:04"))
	b.WriteString(rule + "\n")

	for _, item := range sale.Items {
		b.WriteString(item.Description + "\n")
		line(&b, fmt.Sprintf("  %d x %s", item.Quantity, item.UnitPrice), item.Subtotal.String())
	}

	b.WriteString(rule + "\n")
	line(&b, "Total", sale.RunningTotal.String())
	if !sale.DiscountAmount.IsZero() {
		line(&b, sale.DiscountName, "-"+sale.DiscountAmount.String())
		line(&b, "To pay", sale.PayableAmount.String())
	}
	if sale.State == entity.SaleStatePaid || sale.State == entity.SaleStateSynced {
		line(&b, "Paid", sale.AmountPaid.String())
		line(&b, "Change", sale.Change.String())
	}
	fmt.Fprintf(&b, "%s\n", rule)
	b.WriteString(center("Amounts in " + sale.Currency))
	b.WriteString("\n")

	return b.String(), nil
}

// line escribe label a la izquierda y value alineado a la derecha
func line(b *strings.Builder, label, value string) {
	pad := receiptWidth - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(label + strings.Repeat(" ", pad) + value + "\n")
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	return strings.Repeat(" ", (receiptWidth-len(s))/2) + s
}
