package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sales/src/sales/domain/entity"
)

func newPIMServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pim/api/v1/items/101", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"item_id":101,"sku":"MLK-1L","description":"Milk 1L","price":"10.00","status":"active"}`))
	})
	mux.HandleFunc("/pim/api/v1/items/102", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"item_id":102,"description":"Old soda","price":"5.00","status":"discontinued"}`))
	})
	mux.HandleFunc("/pim/api/v1/items/103", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database down", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/pim/api/v1/items/104", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	return httptest.NewServer(mux)
}

func TestPIMClient_LookupItem(t *testing.T) {
	server := newPIMServer(t)
	defer server.Close()
	c := NewPIMClientWithURL(server.URL, "/pim", time.Second)

	item, err := c.LookupItem(context.Background(), 101)
	if err != nil {
		t.Fatalf("LookupItem failed: %v", err)
	}
	if item.ItemID != 101 || item.Description != "Milk 1L" || !item.UnitPrice.Equal(entity.MustAmount("10")) {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestPIMClient_Errors(t *testing.T) {
	server := newPIMServer(t)
	defer server.Close()
	c := NewPIMClientWithURL(server.URL, "/pim", time.Second)

	tests := []struct {
		name   string
		itemID int
		want   error
	}{
		{name: "unknown item", itemID: 999, want: entity.ErrItemNotFound},
		{name: "inactive item", itemID: 102, want: entity.ErrItemNotFound},
		{name: "server error", itemID: 103, want: entity.ErrCatalogUnavailable},
		{name: "malformed body", itemID: 104, want: entity.ErrCatalogUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.LookupItem(context.Background(), tt.itemID)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPIMClient_Unreachable(t *testing.T) {
	server := newPIMServer(t)
	url := server.URL
	server.Close()

	_, err := NewPIMClientWithURL(url, "/pim", time.Second).LookupItem(context.Background(), 101)
	if !errors.Is(err, entity.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}
