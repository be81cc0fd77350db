package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/toto-league/internal/usecase"
)

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	if h.rankingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ranking service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	items, err := h.rankingService.ListRankings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingsToDTO(ctx, items))
}

func (h *Handler) RecomputeRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeRankings")
	defer span.End()

	if h.rankingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ranking service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.rankingService.Recompute(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeDTO{
		Participants: result.Participants,
		Created:      result.Created,
		Updated:      result.Updated,
		Rankings:     rankingsToDTO(ctx, result.Rankings),
	})
}
