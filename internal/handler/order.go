package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/smartiq/pim-go/internal/domain/order"
)

type entityRef struct {
	ID int64 `json:"id"`
}

type createOrderRequest struct {
	ID      int64      `json:"id,omitempty"`
	Basket  *entityRef `json:"basket"`
	Address *entityRef `json:"address"`
}

type orderResponse struct {
	ID         int64  `json:"id"`
	CreateDate string `json:"createDate"`
	Status     string `json:"status"`
	UserID     int64  `json:"userId"`
	BasketID   int64  `json:"basketId"`
	AddressID  int64  `json:"addressId"`
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		CreateDate: o.CreateDate.Format(time.DateOnly),
		Status:     string(o.Status),
		UserID:     o.UserID,
		BasketID:   o.BasketID,
		AddressID:  o.AddressID,
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != 0 {
		respondError(w, http.StatusBadRequest, "a new order cannot already have an ID")
		return
	}

	var basketID, addressID int64
	if req.Basket != nil {
		basketID = req.Basket.ID
	}
	if req.Address != nil {
		addressID = req.Address.ID
	}

	o, err := h.orderSvc.Create(r.Context(), u, basketID, addressID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	orderID, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orderSvc.Cancel(r.Context(), u, orderID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) updateOrderAddress(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	orderID, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	addressID, err := strconv.ParseInt(r.PathValue("addressId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	o, err := h.orderSvc.UpdateAddress(r.Context(), u, orderID, addressID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
