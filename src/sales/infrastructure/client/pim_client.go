package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"sales/src/sales/domain/entity"
)

// PIMItemResponse representa la respuesta de PIM para un item de caja
type PIMItemResponse struct {
	ItemID      int           `json:"item_id"`
	SKU         string        `json:"sku"`
	Description string        `json:"description"`
	Price       entity.Amount `json:"price"`
	Status      string        `json:"status"`
}

// PIMClient cliente HTTP para consultar el catálogo de items en PIM service vía Kong
type PIMClient struct {
	httpClient *http.Client
	kongURL    string
	pimPath    string
}

// NewPIMClient crea una nueva instancia del cliente PIM
func NewPIMClient() *PIMClient {
	kongURL := os.Getenv("KONG_INTERNAL_URL")
	if kongURL == "" {
		kongURL = "http://kong:8000" // Default para entorno Docker
	}

	pimPath := os.Getenv("PIM_SERVICE_PATH")
	if pimPath == "" {
		pimPath = "/pim" // Default
	}

	return NewPIMClientWithURL(kongURL, pimPath, 10*time.Second)
}

// NewPIMClientWithURL permite fijar base URL y timeout (tests, config explícita)
func NewPIMClientWithURL(kongURL, pimPath string, timeout time.Duration) *PIMClient {
	return &PIMClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		kongURL: kongURL,
		pimPath: pimPath,
	}
}

// LookupItem obtiene descripción y precio de un item.
// 404 -> ErrItemNotFound; errores de red o 5xx -> ErrCatalogUnavailable
func (c *PIMClient) LookupItem(ctx context.Context, itemID int) (*entity.ItemInfo, error) {
	// Construir URL completa vía Kong
	url := fmt.Sprintf("%s%s/api/v1/items/%d", c.kongURL, c.pimPath, itemID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: error calling pim-service: %w", entity.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %w", entity.ErrCatalogUnavailable, err)
	}

	// Verificar status code
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", entity.ErrItemNotFound, itemID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: pim-service returned status %d: %s", entity.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var item PIMItemResponse
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("%w: error unmarshalling item response: %w", entity.ErrCatalogUnavailable, err)
	}

	// Items dados de baja no se venden
	if item.Status != "" && item.Status != "active" {
		return nil, fmt.Errorf("%w: %d (status %s)", entity.ErrItemNotFound, itemID, item.Status)
	}

	return &entity.ItemInfo{
		ItemID:      itemID,
		Description: item.Description,
		UnitPrice:   item.Price,
	}, nil
}
