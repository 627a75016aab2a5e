package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, opts RouterOptions) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}
	if !opts.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.Handle("GET /v1/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/seasons/current", RequireAuth(verifier, http.HandlerFunc(handler.GetCurrentSeason)))
	mux.Handle("POST /v1/seasons", RequireAuth(verifier, http.HandlerFunc(handler.StartSeason)))
	mux.Handle("POST /v1/seasons/{seasonID}/advance-week", RequireAuth(verifier, http.HandlerFunc(handler.AdvanceWeek)))
	mux.Handle("PUT /v1/seasons/{seasonID}/week", RequireAuth(verifier, http.HandlerFunc(handler.SetWeek)))
	mux.Handle("GET /v1/seasons/{seasonID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListSeasonTeams)))
	mux.Handle("GET /v1/seasons/{seasonID}/draft", RequireAuth(verifier, http.HandlerFunc(handler.GetDraft)))
	mux.Handle("PUT /v1/seasons/{seasonID}/draft", RequireAuth(verifier, http.HandlerFunc(handler.ReplaceDraft)))
	mux.Handle("GET /v1/seasons/{seasonID}/weeks/{week}/lineups", RequireAuth(verifier, http.HandlerFunc(handler.ListWeeklyLineups)))
	mux.Handle("PUT /v1/seasons/{seasonID}/weeks/{week}/lineups", RequireAuth(verifier, http.HandlerFunc(handler.SaveWeeklyLineup)))
	mux.Handle("GET /v1/seasons/{seasonID}/scores", RequireAuth(verifier, http.HandlerFunc(handler.ListSeasonScores)))
	mux.Handle("POST /v1/seasons/{seasonID}/weeks/{week}/scores", RequireAuth(verifier, http.HandlerFunc(handler.SaveWeekScores)))
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /v1/players/sync", RequireAuth(verifier, http.HandlerFunc(handler.SyncPlayers)))
}

func registerStateRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/state", RequireAuth(verifier, http.HandlerFunc(handler.GetState)))
	mux.Handle("PUT /v1/state", RequireAuth(verifier, http.HandlerFunc(handler.SaveState)))
}
