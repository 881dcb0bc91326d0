package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"sales/src/sales/domain/entity"
)

// ProcessSaleRequest representa el request de descuento atómico de stock para un item
type ProcessSaleRequest struct {
	ItemID    int    `json:"item_id"`
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
}

// ProcessSaleResponse representa la respuesta de stock-service
type ProcessSaleResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	ItemID         int       `json:"item_id"`
	QuantitySold   int       `json:"quantity_sold"`
	RemainingStock int       `json:"remaining_stock"`
	StockEntryID   string    `json:"stock_entry_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// CompensateSaleRequest representa el request para revertir un descuento de stock
type CompensateSaleRequest struct {
	StockEntryID string `json:"stock_entry_id"`
	Reason       string `json:"reason"`
}

// StockClient cliente HTTP para comunicarse con stock-service vía Kong.
// Implementa port.InventoryGateway
type StockClient struct {
	httpClient *http.Client
	kongURL    string
	stockPath  string
}

// NewStockClient crea una nueva instancia del cliente
func NewStockClient() *StockClient {
	kongURL := os.Getenv("KONG_INTERNAL_URL")
	if kongURL == "" {
		kongURL = "http://kong:8000" // Default para entorno Docker
	}

	stockPath := os.Getenv("STOCK_SERVICE_PATH")
	if stockPath == "" {
		stockPath = "/stock" // Default
	}

	return NewStockClientWithURL(kongURL, stockPath, 10*time.Second)
}

// NewStockClientWithURL permite fijar base URL y timeout
func NewStockClientWithURL(kongURL, stockPath string, timeout time.Duration) *StockClient {
	return &StockClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		kongURL:   kongURL,
		stockPath: stockPath,
	}
}

// PostInventory descuenta cada línea de la venta. Si una línea falla se
// compensan las ya descontadas, así el inventario queda como antes del intento
func (c *StockClient) PostInventory(ctx context.Context, saleLog *entity.SaleLog) error {
	baseReference := fmt.Sprintf("POS-%s", saleLog.SaleID)
	processed := make([]string, 0, len(saleLog.Items))

	for i, item := range saleLog.Items {
		reference := fmt.Sprintf("%s-ITEM%d", baseReference, i+1)

		resp, err := c.ProcessSale(ctx, item.ItemID, item.Quantity, reference)
		if err != nil {
			c.compensate(ctx, processed, "inventory_update_failed")
			return fmt.Errorf("error processing stock for item %d: %w", item.ItemID, err)
		}
		if !resp.Success {
			c.compensate(ctx, processed, "stock_rejected")
			return fmt.Errorf("stock rejected for item %d: %s", item.ItemID, resp.Message)
		}

		processed = append(processed, resp.StockEntryID)
	}

	log.Printf("📦 Inventory updated for sale %s: %d lines", saleLog.SaleID, len(processed))
	return nil
}

// ProcessSale ejecuta el descuento atómico de stock para un item
func (c *StockClient) ProcessSale(ctx context.Context, itemID, quantity int, reference string) (*ProcessSaleResponse, error) {
	jsonData, err := json.Marshal(ProcessSaleRequest{
		ItemID:    itemID,
		Quantity:  quantity,
		Reference: reference,
	})
	if err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}

	url := fmt.Sprintf("%s%s/api/v1/sale", c.kongURL, c.stockPath)
	body, status, err := c.post(ctx, url, jsonData)
	if err != nil {
		return nil, fmt.Errorf("error calling stock-service /sale: %w", err)
	}

	// Puede ser 200 o 400 con success=false
	if status != http.StatusOK && status != http.StatusBadRequest {
		return nil, fmt.Errorf("stock-service /sale returned status %d: %s", status, string(body))
	}

	var saleResp ProcessSaleResponse
	if err := json.Unmarshal(body, &saleResp); err != nil {
		return nil, fmt.Errorf("error unmarshalling response: %w", err)
	}
	return &saleResp, nil
}

// CompensateSale revierte un descuento creando el movimiento inverso
func (c *StockClient) CompensateSale(ctx context.Context, stockEntryID, reason string) error {
	jsonData, err := json.Marshal(CompensateSaleRequest{
		StockEntryID: stockEntryID,
		Reason:       reason,
	})
	if err != nil {
		return fmt.Errorf("error marshalling request: %w", err)
	}

	url := fmt.Sprintf("%s%s/api/v1/compensate-sale", c.kongURL, c.stockPath)
	body, status, err := c.post(ctx, url, jsonData)
	if err != nil {
		return fmt.Errorf("error calling stock-service /compensate-sale: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("compensation failed (status %d): %s", status, string(body))
	}
	return nil
}

func (c *StockClient) compensate(ctx context.Context, stockEntryIDs []string, reason string) {
	if len(stockEntryIDs) == 0 {
		return
	}
	log.Printf("🔄 Compensating %d stock entries. Reason: %s", len(stockEntryIDs), reason)

	for _, entryID := range stockEntryIDs {
		if err := c.CompensateSale(ctx, entryID, reason); err != nil {
			// Se sigue con el resto; queda en el log para auditoría manual
			log.Printf("❌ CRITICAL ERROR: Failed to compensate stock entry %s: %v", entryID, err)
		} else {
			log.Printf("✅ Compensated stock entry: %s", entryID)
		}
	}
}

func (c *StockClient) post(ctx context.Context, url string, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}
