package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/usecase"
)

func (h *Handler) GetCurrentSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentSeason")
	defer span.End()

	item, err := h.seasonService.Current(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) StartSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartSeason")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req startSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.StartSeasonInput{Name: req.Name}
	for _, t := range req.Teams {
		input.Teams = append(input.Teams, team.Identity{
			TeamID:      t.TeamID,
			Name:        t.Name,
			OwnerUserID: t.OwnerUserID,
			CaptainKey:  t.CaptainKey,
		})
	}

	item, teams, err := h.seasonService.Start(ctx, principal, input)
	if err != nil {
		h.logger.WarnContext(ctx, "start season failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "season started", "season_id", item.ID, "user_id", principal.UserID)
	writeSuccess(ctx, w, http.StatusCreated, startSeasonResponse{Season: seasonToDTO(item), Teams: teams})
}

func (h *Handler) AdvanceWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceWeek")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.seasonService.AdvanceWeek(ctx, principal, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "advance week failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) SetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetWeek")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setWeekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.seasonService.SetWeek(ctx, principal, seasonID, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "set week failed", "season_id", seasonID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) ListSeasonTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonTeams")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	teams, err := h.seasonService.ListTeams(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if teams == nil {
		teams = []team.Identity{}
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}
