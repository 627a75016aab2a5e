package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/riskibarqy/slowpitch-league/internal/usecase"
)

// GetState returns the caller's saved snapshot as raw JSON in data, or null when none exists.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetState")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, exists, err := h.stateService.Get(ctx, principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, json.RawMessage(item.StateJSON))
}

func (h *Handler) SaveState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveState")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read state body: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.stateService.Save(ctx, principal, raw)
	if err != nil {
		h.logger.WarnContext(ctx, "save state failed", "user_id", principal.UserID, "bytes", len(raw), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stateResponse{UserID: item.UserID, UpdatedAt: item.UpdatedAt})
}
