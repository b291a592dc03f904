package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/delivery"
	"marketplace-admin/internal/feedback"
	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/offer"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/session"
	"marketplace-admin/internal/stock"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("failed to encode JSON response", zap.Error(err))
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return api.Invalid("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

type errorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// writeError maps service errors onto HTTP answers.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *api.ValidationError
		serr *api.StatusError
		terr *api.TransportError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})

	case errors.Is(err, api.ErrUnauthorized),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrSessionExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Redirect: session.LoginPath})

	case errors.Is(err, session.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})

	case errors.Is(err, delivery.ErrInvalidCarrier):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: "carrier"})

	case errors.Is(err, delivery.ErrOrderNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, stock.ErrItemNotFound),
		errors.Is(err, offer.ErrOfferNotFound),
		errors.Is(err, feedback.ErrFeedbackNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, delivery.ErrAlreadyAssigned),
		errors.Is(err, delivery.ErrAssignmentInFlight),
		errors.Is(err, delivery.ErrNotReady),
		errors.Is(err, delivery.ErrNoPrompt),
		errors.Is(err, offer.ErrTerminal):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})

	case errors.As(err, &serr):
		status := serr.StatusCode
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Error: serr.Message})

	case errors.As(err, &terr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: api.Reason(err)})

	default:
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
