package port

import (
	"context"
	"sales/src/sales/domain/entity"
)

// ItemCatalog resuelve un item_id a descripción y precio.
// Debe retornar entity.ErrItemNotFound o entity.ErrCatalogUnavailable (envueltos o no)
type ItemCatalog interface {
	LookupItem(ctx context.Context, itemID int) (*entity.ItemInfo, error)
}
