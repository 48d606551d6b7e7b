package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/smartiq/pim-go/internal/domain/address"
	"github.com/smartiq/pim-go/internal/domain/basket"
	"github.com/smartiq/pim-go/internal/domain/catalog"
	"github.com/smartiq/pim-go/internal/domain/order"
	"github.com/smartiq/pim-go/internal/domain/user"
)

// errorResponse is the JSON body for all failed requests.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Code: status, Message: message})
}

// respondDomainError maps workflow and repository errors to HTTP statuses:
// validation 400, access denied 403, missing entities 404. Everything else
// is logged and answered with a bare 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *order.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, ve.Error())
		return
	}

	var ade *order.AccessDeniedError
	if errors.As(err, &ade) {
		respondError(w, http.StatusForbidden, ade.Error())
		return
	}

	switch {
	case errors.Is(err, basket.ErrNotFound),
		errors.Is(err, basket.ErrItemNotFound),
		errors.Is(err, address.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
