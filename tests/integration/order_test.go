//go:build integration

package integration

import (
	"net/http"
	"testing"
)

type entityRef struct {
	ID int64 `json:"id"`
}

type orderRequest struct {
	ID      int64      `json:"id,omitempty"`
	Basket  *entityRef `json:"basket,omitempty"`
	Address *entityRef `json:"address,omitempty"`
}

func createAddress(t *testing.T) addressResponse {
	t.Helper()

	resp := doPost(t, "/api/addresses", map[string]string{
		"name":     "home",
		"city":     "Ankara",
		"district": "Cankaya",
		"details":  "No 3",
	}, demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create address: expected 201, got %d", resp.StatusCode)
	}
	return decodeJSON[addressResponse](t, resp)
}

func TestCreateOrder(t *testing.T) {
	b := activeBasket(t)
	addr := createAddress(t)

	resp := doPost(t, "/api/orders", orderRequest{
		Basket:  &entityRef{ID: b.ID},
		Address: &entityRef{ID: addr.ID},
	}, demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	o := decodeJSON[orderResponse](t, resp)
	if o.Status != "NEW" {
		t.Errorf("status: got %q, want NEW", o.Status)
	}
	if o.BasketID != b.ID {
		t.Errorf("basketId: got %d, want %d", o.BasketID, b.ID)
	}
	if o.AddressID != addr.ID {
		t.Errorf("addressId: got %d, want %d", o.AddressID, addr.ID)
	}
	if o.UserID == 0 {
		t.Error("userId is zero; owner should come from the API key")
	}
}

func TestCreateOrder_RejectsClientID(t *testing.T) {
	resp := doPost(t, "/api/orders", orderRequest{
		ID:      42,
		Basket:  &entityRef{ID: 1},
		Address: &entityRef{ID: 1},
	}, demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateOrder_MissingBasket(t *testing.T) {
	addr := createAddress(t)

	resp := doPost(t, "/api/orders", orderRequest{
		Address: &entityRef{ID: addr.ID},
	}, demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateOrder_UnknownBasket(t *testing.T) {
	addr := createAddress(t)

	resp := doPost(t, "/api/orders", orderRequest{
		Basket:  &entityRef{ID: 999999},
		Address: &entityRef{ID: addr.ID},
	}, demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCancelOrder(t *testing.T) {
	b := activeBasket(t)
	addr := createAddress(t)

	resp := doPost(t, "/api/orders", orderRequest{
		Basket:  &entityRef{ID: b.ID},
		Address: &entityRef{ID: addr.ID},
	}, demoAPIKey)
	o := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	resp = doGet(t, "/api/orders/cancel/"+itoa(o.ID), demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancelled := decodeJSON[orderResponse](t, resp)
	if cancelled.Status != "CANCELLED" {
		t.Errorf("status: got %q, want CANCELLED", cancelled.Status)
	}

	// Cancelling again still succeeds; the transition is unconditional.
	resp2 := doGet(t, "/api/orders/cancel/"+itoa(o.ID), demoAPIKey)
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("repeat cancel: expected 200, got %d", resp2.StatusCode)
	}
}

func TestCancelOrder_NotFound(t *testing.T) {
	resp := doGet(t, "/api/orders/cancel/999999", demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateOrderAddress(t *testing.T) {
	b := activeBasket(t)
	first := createAddress(t)
	second := createAddress(t)

	resp := doPost(t, "/api/orders", orderRequest{
		Basket:  &entityRef{ID: b.ID},
		Address: &entityRef{ID: first.ID},
	}, demoAPIKey)
	o := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	resp = doGet(t, "/api/orders/updateAddress/"+itoa(o.ID)+"/"+itoa(second.ID), demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	updated := decodeJSON[orderResponse](t, resp)
	if updated.AddressID != second.ID {
		t.Errorf("addressId: got %d, want %d", updated.AddressID, second.ID)
	}
}

func TestGetOrder(t *testing.T) {
	b := activeBasket(t)
	addr := createAddress(t)

	resp := doPost(t, "/api/orders", orderRequest{
		Basket:  &entityRef{ID: b.ID},
		Address: &entityRef{ID: addr.ID},
	}, demoAPIKey)
	created := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	resp = doGet(t, "/api/orders/"+itoa(created.ID), demoAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	got := decodeJSON[orderResponse](t, resp)
	if got.ID != created.ID {
		t.Errorf("id: got %d, want %d", got.ID, created.ID)
	}
}
