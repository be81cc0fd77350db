package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/toto-league/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type participantRequest struct {
	Participant string `param:"participant" validate:"required,max=200"`
}

type tableParticipantRequest struct {
	TableID     string `param:"tableID" validate:"required,max=20"`
	Participant string `param:"participant" validate:"required,max=200"`
}

func (h *Handler) GetParticipantScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetParticipantScores")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	participant := strings.TrimSpace(r.PathValue("participant"))
	if err := h.validateRequest(ctx, participantRequest{Participant: participant}); err != nil {
		writeError(ctx, w, err)
		return
	}

	span.SetAttributes(attribute.String("toto.participant", participant))

	scores, err := h.scoringService.ParticipantScores(ctx, participant)
	if err != nil {
		h.logger.WarnContext(ctx, "get participant scores failed", "participant", participant, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantScoresToDTO(ctx, scores))
}

func (h *Handler) GetLocationBonus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLocationBonus", attribute.String("toto.table_id", r.PathValue("tableID")))
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req := tableParticipantRequest{
		TableID:     strings.TrimSpace(r.PathValue("tableID")),
		Participant: strings.TrimSpace(r.URL.Query().Get("participant")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bonus, decided, err := h.scoringService.LocationBonus(ctx, req.TableID, req.Participant)
	if err != nil {
		h.logger.WarnContext(ctx, "get location bonus failed", "table_id", req.TableID, "participant", req.Participant, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := tableBonusDTO{TableID: req.TableID, ParticipantName: req.Participant, Decided: decided}
	if decided {
		dto := locationBonusToDTO(bonus)
		out.Bonus = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
