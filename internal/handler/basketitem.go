package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/smartiq/pim-go/internal/domain/basket"
	"github.com/smartiq/pim-go/internal/domain/order"
)

type createBasketItemRequest struct {
	ID        int64 `json:"id,omitempty"`
	ProductID int64 `json:"productId"`
}

func toBasketItemResponse(item *basket.Item) basketItemResponse {
	return basketItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		TotalCost: item.TotalCost,
	}
}

// ownedItem loads the item and verifies the requester owns its basket.
func (h *Handler) ownedItem(r *http.Request, userID, itemID int64) (*basket.Item, *basket.Basket, error) {
	item, err := h.items.GetByID(r.Context(), itemID)
	if err != nil {
		return nil, nil, err
	}
	b, err := h.baskets.GetByID(r.Context(), item.BasketID)
	if err != nil {
		return nil, nil, err
	}
	if b.UserID != userID {
		return nil, nil, &order.AccessDeniedError{Entity: "basketItem", ID: itemID}
	}
	return item, b, nil
}

func (h *Handler) listBasketItems(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	baskets, err := h.baskets.ListByUser(r.Context(), u.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	out := []basketItemResponse{}
	for i := range baskets {
		items, err := h.items.ListByBasket(r.Context(), baskets[i].ID)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		for j := range items {
			out = append(out, toBasketItemResponse(&items[j]))
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) getBasketItem(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid basket item id")
		return
	}

	item, _, err := h.ownedItem(r, u.ID, id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBasketItemResponse(item))
}

// createBasketItem goes through the basket workflow rather than writing the
// row directly, so the basket total stays consistent with its items.
func (h *Handler) createBasketItem(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	var req createBasketItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != 0 {
		respondError(w, http.StatusBadRequest, "a new basket item cannot already have an ID")
		return
	}

	v, err := h.basketSvc.AddItem(r.Context(), u.ID, req.ProductID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	created := v.Items[len(v.Items)-1]
	respondJSON(w, http.StatusCreated, toBasketItemResponse(&created))
}

func (h *Handler) removeBasketItem(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid basket item id")
		return
	}

	_, b, err := h.ownedItem(r, u.ID, id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if _, err := h.basketSvc.RemoveFromBasket(r.Context(), b, id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
