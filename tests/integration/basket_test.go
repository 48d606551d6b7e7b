//go:build integration

package integration

import (
	"math"
	"net/http"
	"testing"
)

func activeBasket(t *testing.T) basketResponse {
	t.Helper()

	resp := doGet(t, "/api/baskets/createOrGetActiveBasket", demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	return decodeJSON[basketResponse](t, resp)
}

// drainBasket removes every item so tests that share the demo user start
// from an empty basket.
func drainBasket(t *testing.T) basketResponse {
	t.Helper()

	b := activeBasket(t)
	for len(b.BasketItems) > 0 {
		resp := doGet(t, "/api/baskets/deleteItem/"+itoa(b.BasketItems[0].ID), demoAPIKey)
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			t.Fatalf("deleteItem: expected 200, got %d", resp.StatusCode)
		}
		b = decodeJSON[basketResponse](t, resp)
		resp.Body.Close()
	}
	return b
}

func firstProduct(t *testing.T) productResponse {
	t.Helper()

	resp := doGet(t, "/api/products", demoAPIKey)
	defer resp.Body.Close()
	products := decodeJSON[[]productResponse](t, resp)
	if len(products) == 0 {
		t.Fatal("no products seeded")
	}
	return products[0]
}

func TestCreateOrGetActiveBasket_Stable(t *testing.T) {
	first := activeBasket(t)
	if first.Status != "ACTIVE" {
		t.Fatalf("status: got %q, want ACTIVE", first.Status)
	}

	second := activeBasket(t)
	if second.ID != first.ID {
		t.Errorf("repeat call returned basket %d, want %d", second.ID, first.ID)
	}
}

func TestAddItem(t *testing.T) {
	drainBasket(t)
	p := firstProduct(t)

	resp := doPost(t, "/api/baskets/addItem/"+itoa(p.ID), nil, demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	b := decodeJSON[basketResponse](t, resp)
	if len(b.BasketItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(b.BasketItems))
	}
	item := b.BasketItems[0]
	if item.ProductID != p.ID {
		t.Errorf("productId: got %d, want %d", item.ProductID, p.ID)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity: got %d, want 1", item.Quantity)
	}
	if item.TotalCost != int64(p.Price) {
		t.Errorf("item totalCost: got %d, want %d", item.TotalCost, int64(p.Price))
	}
	if math.Abs(b.TotalCost-p.Price) > 0.001 {
		t.Errorf("basket totalCost: got %v, want %v", b.TotalCost, p.Price)
	}
}

func TestAddItem_TotalSumsPrices(t *testing.T) {
	drainBasket(t)
	p := firstProduct(t)

	resp := doPost(t, "/api/baskets/addItem/"+itoa(p.ID), nil, demoAPIKey)
	decodeJSON[basketResponse](t, resp)
	resp.Body.Close()

	resp = doPost(t, "/api/baskets/addItem/"+itoa(p.ID), nil, demoAPIKey)
	defer resp.Body.Close()
	b := decodeJSON[basketResponse](t, resp)

	if len(b.BasketItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(b.BasketItems))
	}
	if math.Abs(b.TotalCost-2*p.Price) > 0.001 {
		t.Errorf("basket totalCost: got %v, want %v", b.TotalCost, 2*p.Price)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	resp := doPost(t, "/api/baskets/addItem/999999", nil, demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteItem_Idempotent(t *testing.T) {
	drainBasket(t)
	p := firstProduct(t)

	resp := doPost(t, "/api/baskets/addItem/"+itoa(p.ID), nil, demoAPIKey)
	b := decodeJSON[basketResponse](t, resp)
	resp.Body.Close()
	itemID := b.BasketItems[0].ID

	resp = doGet(t, "/api/baskets/deleteItem/"+itoa(itemID), demoAPIKey)
	b = decodeJSON[basketResponse](t, resp)
	resp.Body.Close()
	if len(b.BasketItems) != 0 {
		t.Fatalf("expected empty basket, got %d items", len(b.BasketItems))
	}
	if b.TotalCost != 0 {
		t.Errorf("totalCost: got %v, want 0", b.TotalCost)
	}

	// Deleting the same item again is a no-op, not an error.
	resp = doGet(t, "/api/baskets/deleteItem/"+itoa(itemID), demoAPIKey)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("repeat delete: expected 200, got %d", resp.StatusCode)
	}
}
