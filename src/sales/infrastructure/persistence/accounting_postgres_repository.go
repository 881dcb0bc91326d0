package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Montos en NUMERIC sin escala: se guardan exactos, igual que entity.Amount
const schema = `
	CREATE TABLE IF NOT EXISTS pos_sales (
		id              UUID PRIMARY KEY,
		customer_id     INTEGER,
		discount_name   TEXT NOT NULL DEFAULT '',
		running_total   NUMERIC NOT NULL,
		discount_amount NUMERIC NOT NULL,
		payable_amount  NUMERIC NOT NULL,
		amount_paid     NUMERIC NOT NULL,
		change          NUMERIC NOT NULL,
		currency        TEXT NOT NULL,
		started_at      TIMESTAMPTZ NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pos_sales_created_at ON pos_sales (created_at);
	CREATE TABLE IF NOT EXISTS pos_sale_items (
		id          UUID PRIMARY KEY,
		pos_sale_id UUID NOT NULL REFERENCES pos_sales (id),
		line_no     INTEGER NOT NULL,
		item_id     INTEGER NOT NULL,
		description TEXT NOT NULL,
		quantity    INTEGER NOT NULL,
		unit_price  NUMERIC NOT NULL,
		subtotal    NUMERIC NOT NULL
	);
`

// AccountingPostgresRepository registra las ventas en el libro contable (PostgreSQL).
// Implementa port.AccountingGateway y port.SaleLogRepository
type AccountingPostgresRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewAccountingPostgresRepository crea una nueva instancia del repositorio
func NewAccountingPostgresRepository(db *sql.DB) *AccountingPostgresRepository {
	return &AccountingPostgresRepository{
		db:  db,
		now: time.Now,
	}
}

var (
	_ port.AccountingGateway = (*AccountingPostgresRepository)(nil)
	_ port.SaleLogRepository = (*AccountingPostgresRepository)(nil)
)

// EnsureSchema crea las tablas si no existen
func (r *AccountingPostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating accounting schema: %w", err)
	}
	return nil
}

// PostAccounting persiste la venta con sus items en una transacción.
// Reenviar la misma venta no duplica registros
func (r *AccountingPostgresRepository) PostAccounting(ctx context.Context, sale *entity.SaleLog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	querySale := `
		INSERT INTO pos_sales (
			id, customer_id, discount_name,
			running_total, discount_amount, payable_amount,
			amount_paid, change, currency, started_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (id) DO NOTHING
	`

	var customerID sql.NullInt64
	if sale.CustomerID != nil {
		customerID = sql.NullInt64{Int64: int64(*sale.CustomerID), Valid: true}
	}

	res, err := tx.ExecContext(ctx, querySale,
		sale.SaleID,
		customerID,
		sale.DiscountName,
		sale.RunningTotal.Decimal(),
		sale.DiscountAmount.Decimal(),
		sale.PayableAmount.Decimal(),
		sale.AmountPaid.Decimal(),
		sale.Change.Decimal(),
		sale.Currency,
		sale.StartedAt,
		r.now(),
	)
	if err != nil {
		return fmt.Errorf("error creating pos_sale: %w", err)
	}

	// Ya registrada en un intento anterior
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return tx.Commit()
	}

	queryItem := `
		INSERT INTO pos_sale_items (
			id, pos_sale_id, line_no, item_id, description,
			quantity, unit_price, subtotal
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	for i, item := range sale.Items {
		_, err = tx.ExecContext(ctx, queryItem,
			uuid.New(),
			sale.SaleID,
			i+1,
			item.ItemID,
			item.Description,
			item.Quantity,
			item.UnitPrice.Decimal(),
			item.Subtotal.Decimal(),
		)
		if err != nil {
			return fmt.Errorf("error creating pos_sale_item for item %d: %w", item.ItemID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// ListBetween retorna las ventas registradas en [from, to) con sus items
func (r *AccountingPostgresRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleLog, error) {
	querySales := `
		SELECT
			id, customer_id, discount_name,
			running_total, discount_amount, payable_amount,
			amount_paid, change, currency, started_at, created_at
		FROM pos_sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, querySales, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying pos_sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.SaleLog
	for rows.Next() {
		var (
			sale                                     entity.SaleLog
			customerID                               sql.NullInt64
			running, discount, payable, paid, change decimal.Decimal
			createdAt                                time.Time
		)
		err := rows.Scan(
			&sale.SaleID,
			&customerID,
			&sale.DiscountName,
			&running,
			&discount,
			&payable,
			&paid,
			&change,
			&sale.Currency,
			&sale.StartedAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning pos_sale: %w", err)
		}
		if customerID.Valid {
			id := int(customerID.Int64)
			sale.CustomerID = &id
		}
		sale.RunningTotal = entity.AmountFromDecimal(running)
		sale.DiscountAmount = entity.AmountFromDecimal(discount)
		sale.PayableAmount = entity.AmountFromDecimal(payable)
		sale.AmountPaid = entity.AmountFromDecimal(paid)
		sale.Change = entity.AmountFromDecimal(change)
		sale.EndedAt = &createdAt
		sale.State = entity.SaleStateSynced
		sales = append(sales, &sale)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pos_sales: %w", err)
	}

	// Items de cada venta (N+1 query)
	for _, sale := range sales {
		items, err := r.listItems(ctx, sale.SaleID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
		for _, item := range items {
			sale.EnteredIDs = append(sale.EnteredIDs, item.ItemID)
		}
	}

	return sales, nil
}

func (r *AccountingPostgresRepository) listItems(ctx context.Context, saleID uuid.UUID) ([]entity.LineItem, error) {
	queryItems := `
		SELECT item_id, description, quantity, unit_price, subtotal
		FROM pos_sale_items
		WHERE pos_sale_id = $1
		ORDER BY line_no
	`

	rows, err := r.db.QueryContext(ctx, queryItems, saleID)
	if err != nil {
		return nil, fmt.Errorf("error querying pos_sale_items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var item entity.LineItem
		var unitPrice, subtotal decimal.Decimal
		if err := rows.Scan(&item.ItemID, &item.Description, &item.Quantity, &unitPrice, &subtotal); err != nil {
			return nil, fmt.Errorf("error scanning pos_sale_item: %w", err)
		}
		item.UnitPrice = entity.AmountFromDecimal(unitPrice)
		item.Subtotal = entity.AmountFromDecimal(subtotal)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pos_sale_items: %w", err)
	}
	return items, nil
}

// Summarize agrega las ventas de [from, to). No usa DATE(created_at) para aprovechar el índice
func (r *AccountingPostgresRepository) Summarize(ctx context.Context, from, to time.Time) (*port.DailySummary, error) {
	query := `
		SELECT
			COUNT(*) as sales_count,
			COALESCE(SUM(running_total), 0) as gross_total,
			COALESCE(SUM(discount_amount), 0) as total_discounts,
			COALESCE(SUM(payable_amount), 0) as net_total,
			MIN(created_at) as first_sale,
			MAX(created_at) as last_sale
		FROM pos_sales
		WHERE created_at >= $1
			AND created_at < $2
	`

	var count int
	var gross, discounts, net decimal.Decimal
	var firstSale, lastSale sql.NullTime

	err := r.db.QueryRowContext(ctx, query, from, to).Scan(
		&count,
		&gross,
		&discounts,
		&net,
		&firstSale,
		&lastSale,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying pos_sales: %w", err)
	}

	summary := &port.DailySummary{
		SalesCount:     count,
		GrossTotal:     entity.AmountFromDecimal(gross),
		TotalDiscounts: entity.AmountFromDecimal(discounts),
		NetTotal:       entity.AmountFromDecimal(net),
	}
	if firstSale.Valid {
		summary.FirstSaleAt = &firstSale.Time
	}
	if lastSale.Valid {
		summary.LastSaleAt = &lastSale.Time
	}
	return summary, nil
}
