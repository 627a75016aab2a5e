package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
)

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	picks, err := h.draftService.Get(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if picks == nil {
		picks = []draft.Pick{}
	}

	writeSuccess(ctx, w, http.StatusOK, draftResponse{SeasonID: seasonID, Picks: picks})
}

func (h *Handler) ReplaceDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceDraft")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req draftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	picks, err := h.draftService.Replace(ctx, principal, seasonID, req.Picks)
	if err != nil {
		h.logger.WarnContext(ctx, "replace draft failed", "season_id", seasonID, "picks", len(req.Picks), "error", err)
		writeError(ctx, w, err)
		return
	}
	if picks == nil {
		picks = []draft.Pick{}
	}

	writeSuccess(ctx, w, http.StatusOK, draftResponse{SeasonID: seasonID, Picks: picks})
}
