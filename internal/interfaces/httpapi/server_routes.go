package httpapi

import (
	"net/http"
	"strings"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rankings", handler.ListRankings)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/participants/{participant}/scores", handler.GetParticipantScores)
	mux.HandleFunc("GET /v1/tables/{tableID}/bonus", handler.GetLocationBonus)
	mux.HandleFunc("GET /v1/tables/{tableID}/taken-teams", handler.ListTakenTeams)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/rankings/recompute", adminOnly(adminToken, http.HandlerFunc(handler.RecomputeRankings)))
	mux.Handle("POST /v1/predictions/import", adminOnly(adminToken, http.HandlerFunc(handler.ImportPredictions)))
}

// adminOnly leaves the route open when no token is configured.
func adminOnly(token string, next http.Handler) http.Handler {
	token = strings.TrimSpace(token)
	if token == "" {
		return next
	}
	return requireBearer(token, next)
}
