// Package http contains the chi HTTP handlers for the analysis API.
package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "golfsight/internal/errors"
	"golfsight/internal/services"
	"golfsight/pkg/contracts/domain"

	"golfsight/internal/dataprocessing"
)

// AnalysisHandler handles dataset upload and analysis requests
type AnalysisHandler struct {
	service        *services.AnalysisService
	validate       *validator.Validate
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *services.AnalysisService, maxUploadBytes int64, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:        service,
		validate:       validator.New(),
		logger:         logger.With(slog.String("handler", "analysis")),
		errorHandler:   apierrors.NewErrorHandler(logger, false),
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers the analysis routes
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/", h.Analyze)
		r.Post("/players", h.ListPlayers)
	})
}

// Analyze handles POST /api/analysis: a multipart upload carrying the
// dataset file plus form fields selecting the player and engine options.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	table, ok := h.parseUpload(w, r)
	if !ok {
		return
	}

	playerID := strings.TrimSpace(r.FormValue("player"))
	if playerID == "" {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "MISSING_PARAMETER", "form field \"player\" is required"))
		return
	}

	opts, err := h.parseOptions(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "analysis requested",
		slog.String("player", playerID),
		slog.Bool("narrative", opts.WithNarrative),
	)

	result, err := h.service.AnalyzeTable(ctx, table, playerID, opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// ListPlayers handles POST /api/analysis/players: resolves an uploaded
// dataset far enough to list the selectable player identifiers.
func (h *AnalysisHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	table, ok := h.parseUpload(w, r)
	if !ok {
		return
	}

	players, err := h.service.PlayerList(table)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"players": players,
		"count":   len(players),
	})
}

// parseUpload reads the multipart "file" field into a raw table, dispatching
// on the uploaded filename's extension. On failure it writes the error
// response itself and returns ok=false.
func (h *AnalysisHandler) parseUpload(w http.ResponseWriter, r *http.Request) (domain.Table, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		} else {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusBadRequest, "INVALID_REQUEST", "expected a multipart form upload"))
		}
		return domain.Table{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "MISSING_PARAMETER", "form field \"file\" is required"))
		return domain.Table{}, false
	}
	defer file.Close()

	table, err := parseByExtension(file, header)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity, "INVALID_SCHEMA", "could not parse uploaded file", err.Error()))
		return domain.Table{}, false
	}
	return table, true
}

func parseByExtension(file multipart.File, header *multipart.FileHeader) (domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".xlsx":
		return dataprocessing.ParseWorkbook(file)
	case ".csv":
		return dataprocessing.ParseCSV(file)
	default:
		return domain.Table{}, &unsupportedFormatError{ext: ext}
	}
}

type unsupportedFormatError struct {
	ext string
}

func (e *unsupportedFormatError) Error() string {
	return "unsupported file format " + strconv.Quote(e.ext) + " (want .xlsx or .csv)"
}

// parseOptions reads the optional engine override form fields.
func (h *AnalysisHandler) parseOptions(r *http.Request) (services.Options, error) {
	opts := services.Options{
		SkillField: strings.TrimSpace(r.FormValue("skill_field")),
		ScoreStat:  strings.TrimSpace(r.FormValue("score_stat")),
	}

	if raw := strings.TrimSpace(r.FormValue("bucket_width")); raw != "" {
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, apierrors.New(
				http.StatusBadRequest, "INVALID_PARAMETER", "bucket_width must be a number")
		}
		opts.BucketWidth = width
	}
	if raw := strings.TrimSpace(r.FormValue("narrative")); raw != "" {
		opts.WithNarrative, _ = strconv.ParseBool(raw)
	}

	if err := h.validate.Struct(opts); err != nil {
		return opts, apierrors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED", "invalid analysis options", err.Error())
	}
	return opts, nil
}
