package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListSeasonScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonScores")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	byWeek, err := h.scoreService.ListBySeason(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoresToDTO(byWeek))
}

func (h *Handler) SaveWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveWeekScores")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveScoresRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	saved, err := h.scoreService.SaveWeek(ctx, principal, seasonID, week, req.Scores)
	if err != nil {
		h.logger.WarnContext(ctx, "save scores failed", "season_id", seasonID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saved)
}
