package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/toto-league/internal/usecase"
)

type standingsRequest struct {
	TableIDs    []string `param:"tables" validate:"max=50,dive,required,max=20"`
	Source      string   `param:"source" validate:"omitempty,oneof=actual predictions"`
	Participant string   `param:"participant" validate:"required_if=Source predictions,max=200"`
	Rounds      int      `param:"rounds" validate:"gte=0"`
}

// ListStandings accepts ?tables=T2,T3&source=actual|predictions&participant=&rounds=.
func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	if h.standingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: standings service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	query := r.URL.Query()
	req := standingsRequest{
		TableIDs:    splitCSV(query.Get("tables")),
		Source:      strings.ToLower(strings.TrimSpace(query.Get("source"))),
		Participant: strings.TrimSpace(query.Get("participant")),
	}
	if raw := strings.TrimSpace(query.Get("rounds")); raw != "" {
		rounds, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: rounds must be an integer", usecase.ErrInvalidInput))
			return
		}
		req.Rounds = rounds
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tables, err := h.standingService.Standings(ctx, usecase.StandingsQuery{
		TableIDs:    req.TableIDs,
		Source:      req.Source,
		Participant: req.Participant,
		Rounds:      req.Rounds,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tables", req.TableIDs, "source", req.Source, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]standingsTableDTO, 0, len(tables))
	for _, table := range tables {
		out = append(out, standingsTableToDTO(ctx, table))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
