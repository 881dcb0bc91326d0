package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"sales/src/sales/domain/entity"

	"github.com/shopspring/decimal"
)

// MemoryCatalog catálogo de items en memoria. Implementa port.ItemCatalog.
// Se carga desde la base de items o desde el seed del archivo de configuración
type MemoryCatalog struct {
	items map[int]entity.ItemInfo
	mu    sync.RWMutex
}

// NewMemoryCatalog crea un catálogo vacío
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		items: make(map[int]entity.ItemInfo),
	}
}

// Load agrega o reemplaza items
func (c *MemoryCatalog) Load(items []entity.ItemInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		c.items[item.ItemID] = item
	}
}

// LoadFromDB carga los items activos desde la tabla items
func (c *MemoryCatalog) LoadFromDB(db *sql.DB) error {
	log.Println("🔄 Loading catalog items into memory...")

	query := `
		SELECT item_id, description, price
		FROM items
		WHERE is_active = true
	`

	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("error querying items: %w", err)
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var item entity.ItemInfo
		var price decimal.Decimal
		if err := rows.Scan(&item.ItemID, &item.Description, &price); err != nil {
			log.Printf("⚠️  Error scanning item: %v", err)
			continue
		}
		item.UnitPrice = entity.AmountFromDecimal(price)
		c.items[item.ItemID] = item
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating items: %w", err)
	}

	log.Printf("✅ Loaded %d catalog items into memory", count)
	return nil
}

// LookupItem busca un item por id
func (c *MemoryCatalog) LookupItem(ctx context.Context, itemID int) (*entity.ItemInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", entity.ErrItemNotFound, itemID)
	}
	return &item, nil
}

// Len retorna la cantidad de items cargados
func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
