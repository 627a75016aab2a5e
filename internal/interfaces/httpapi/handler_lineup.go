package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
)

func (h *Handler) ListWeeklyLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeeklyLineups")
	defer span.End()

	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	rows, err := h.lineupService.ListByWeek(ctx, seasonID, week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if rows == nil {
		rows = []lineup.Row{}
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) SaveWeeklyLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveWeeklyLineup")
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

	var req saveLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.lineupService.SaveNight(ctx, principal, lineup.NightLineup{
		SeasonID:  seasonID,
		Week:      week,
		TeamID:    req.TeamID,
		Night:     stats.Night(req.Night),
		PlayerIDs: req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save lineup failed",
			"season_id", seasonID,
			"week", week,
			"team_id", req.TeamID,
			"night", req.Night,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}
