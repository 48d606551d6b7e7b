package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/smartiq/pim-go/internal/domain/basket"
)

type basketItemResponse struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	TotalCost int64 `json:"totalCost"`
}

type basketResponse struct {
	ID          int64                `json:"id"`
	CreateDate  string               `json:"createDate"`
	Status      string               `json:"status"`
	TotalCost   float64              `json:"totalCost"`
	BasketItems []basketItemResponse `json:"basketItems"`
}

func toBasketResponse(v *basket.View) basketResponse {
	items := make([]basketItemResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = basketItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			TotalCost: item.TotalCost,
		}
	}
	return basketResponse{
		ID:          v.Basket.ID,
		CreateDate:  v.Basket.CreateDate.Format(time.DateOnly),
		Status:      string(v.Basket.Status),
		TotalCost:   v.Basket.TotalCost.InexactFloat64(),
		BasketItems: items,
	}
}

func (h *Handler) createOrGetActiveBasket(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	b, err := h.basketSvc.GetOrCreateActive(r.Context(), u.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	v, err := h.basketSvc.View(r.Context(), b)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBasketResponse(v))
}

func (h *Handler) addBasketItem(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	productID, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	v, err := h.basketSvc.AddItem(r.Context(), u.ID, productID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBasketResponse(v))
}

func (h *Handler) deleteBasketItem(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	itemID, err := strconv.ParseInt(r.PathValue("basketItemId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid basket item id")
		return
	}

	v, err := h.basketSvc.RemoveItem(r.Context(), u.ID, itemID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBasketResponse(v))
}

func (h *Handler) listBaskets(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	baskets, err := h.baskets.ListByUser(r.Context(), u.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	out := make([]basketResponse, len(baskets))
	for i := range baskets {
		v, err := h.basketSvc.View(r.Context(), &baskets[i])
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		out[i] = toBasketResponse(v)
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) getBasket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid basket id")
		return
	}

	b, err := h.baskets.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	v, err := h.basketSvc.View(r.Context(), b)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBasketResponse(v))
}

func (h *Handler) deleteBasket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid basket id")
		return
	}

	if err := h.baskets.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
