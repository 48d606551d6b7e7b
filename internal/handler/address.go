package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/smartiq/pim-go/internal/domain/address"
)

type addressRequest struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	City     string `json:"city"`
	District string `json:"district"`
	Details  string `json:"details"`
}

type addressResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	District string `json:"district"`
	Details  string `json:"details"`
	UserID   int64  `json:"userId"`
}

func toAddressResponse(a *address.Address) addressResponse {
	return addressResponse{
		ID:       a.ID,
		Name:     a.Name,
		City:     a.City,
		District: a.District,
		Details:  a.Details,
		UserID:   a.UserID,
	}
}

func (h *Handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	addresses, err := h.addresses.ListByUser(r.Context(), u.ID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	out := make([]addressResponse, len(addresses))
	for i := range addresses {
		out[i] = toAddressResponse(&addresses[i])
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) getAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	a, err := h.addresses.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAddressResponse(a))
}

func (h *Handler) createAddress(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != 0 {
		respondError(w, http.StatusBadRequest, "a new address cannot already have an ID")
		return
	}
	if req.Name == "" || req.City == "" {
		respondError(w, http.StatusBadRequest, "name and city are required")
		return
	}

	a := &address.Address{
		Name:     req.Name,
		City:     req.City,
		District: req.District,
		Details:  req.Details,
		UserID:   u.ID,
	}
	if err := h.addresses.Create(r.Context(), a); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAddressResponse(a))
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	u := RequesterFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != 0 && req.ID != id {
		respondError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	existing, err := h.addresses.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if existing.UserID != u.ID {
		respondError(w, http.StatusForbidden, "no access to address")
		return
	}

	existing.Name = req.Name
	existing.City = req.City
	existing.District = req.District
	existing.Details = req.Details
	if err := h.addresses.Update(r.Context(), existing); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAddressResponse(existing))
}

func (h *Handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	if err := h.addresses.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
