package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/toto-league/internal/usecase"
)

type importPredictionsRequest struct {
	Records []map[string]string `json:"records" validate:"required,min=1,max=5000"`
}

func (h *Handler) ListTakenTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTakenTeams")
	defer span.End()

	if h.predictionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: prediction service is not configured", usecase.ErrDependencyUnavailable))
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

	teams, err := h.predictionService.TakenTeams(ctx, req.TableID, req.Participant)
	if err != nil {
		h.logger.WarnContext(ctx, "list taken teams failed", "table_id", req.TableID, "participant", req.Participant, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, takenTeamsDTO{
		TableID:         req.TableID,
		ParticipantName: req.Participant,
		Teams:           teams,
	})
}

func (h *Handler) ImportPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportPredictions")
	defer span.End()

	if h.predictionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: prediction service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req importPredictionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.predictionService.ImportPredictions(ctx, req.Records)
	if err != nil {
		h.logger.WarnContext(ctx, "import predictions failed", "records", len(req.Records), "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusCreated
	if result.Imported == 0 {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, importResultToDTO(result))
}
