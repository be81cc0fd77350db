package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"github.com/riskibarqy/toto-league/internal/usecase"
)

// maxRequestBody bounds JSON payloads such as prediction imports.
const maxRequestBody = 8 << 20

type Handler struct {
	rankingService    *usecase.RankingService
	scoringService    *usecase.ScoringService
	standingService   *usecase.LeagueStandingService
	predictionService *usecase.PredictionService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	rankingService *usecase.RankingService,
	scoringService *usecase.ScoringService,
	standingService *usecase.LeagueStandingService,
	predictionService *usecase.PredictionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rankingService:    rankingService,
		scoringService:    scoringService,
		standingService:   standingService,
		predictionService: predictionService,
		logger:            logger,
		validator:         newValidator(),
	}
}

// newValidator reports fields by their request parameter or json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("param"); name != "" {
			return name
		}
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %w", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBody {
		return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxRequestBody)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
