package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/zodiac-api/internal/calendar"
	"github.com/zapponejosh/zodiac-api/internal/config"
	"github.com/zapponejosh/zodiac-api/internal/database"
	"github.com/zapponejosh/zodiac-api/internal/logger"
	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	resolver *zodiac.Resolver
	cfg      *config.Config
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, resolver *zodiac.Resolver, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:       db,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
	}
}

// Analysis is the result of resolving one or two dates.
type Analysis struct {
	First          zodiac.Sign           `json:"first"`
	Second         *zodiac.Sign          `json:"second,omitempty"`
	Compatibility  *zodiac.Compatibility `json:"compatibility,omitempty"`
	Summary        string                `json:"summary"`
	CelebrityMatch string                `json:"celebrity_match,omitempty"`

	// Set by POST /api/v1/analyses
	Recorded  bool  `json:"recorded,omitempty"`
	HistoryID int64 `json:"history_id,omitempty"`
}

// BoundaryInfo is the body of GET /api/v1/boundaries/{year}.
type BoundaryInfo struct {
	calendar.Resolution
	OutOfRange bool `json:"out_of_range"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.log(r).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
		return
	}

	minYear, maxYear := h.resolver.SupportedRange()
	signs, boundaries := h.resolver.CacheStats()

	WriteSuccess(w, map[string]interface{}{
		"status": "healthy",
		"supported_range": map[string]int{
			"min_year": minYear,
			"max_year": maxYear,
		},
		"sign_cache":     signs,
		"boundary_cache": boundaries,
	})
}

// GetSign handles GET /api/v1/signs/{date}
func (h *Handlers) GetSign(w http.ResponseWriter, r *http.Request) {
	sign, ok := h.resolveSign(w, r, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	WriteSuccess(w, sign)
}

// GetBoundary handles GET /api/v1/boundaries/{year}
func (h *Handlers) GetBoundary(w http.ResponseWriter, r *http.Request) {
	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %q", yearStr))
		return
	}

	res := h.resolver.Boundary(year)
	WriteSuccess(w, BoundaryInfo{Resolution: res, OutOfRange: res.OutOfRange()})
}

// GetCompatibility handles GET /api/v1/compatibility?a=YYYY-MM-DD&b=YYYY-MM-DD
func (h *Handlers) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("a") == "" || q.Get("b") == "" {
		WriteBadRequest(w, "Both a and b date parameters are required")
		return
	}

	first, ok := h.resolveSign(w, r, q.Get("a"))
	if !ok {
		return
	}
	second, ok := h.resolveSign(w, r, q.Get("b"))
	if !ok {
		return
	}

	WriteSuccess(w, analyze(first, &second))
}

// CreateAnalysis handles POST /api/v1/analyses
//
// Resolves date1 (and date2 when given), scores the pair and records the
// calculation in the caller's history. Callers without a valid API key get
// the analysis unrecorded. A failure to record is logged and reported
// through Recorded; the analysis is still returned.
func (h *Handlers) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	first, ok := h.resolveSign(w, r, req.Date1)
	if !ok {
		return
	}

	var second *zodiac.Sign
	if req.Date2 != "" {
		s, ok := h.resolveSign(w, r, req.Date2)
		if !ok {
			return
		}
		second = &s
	}

	analysis := analyze(first, second)

	owner, ok := HistoryOwner(h.cfg, r)
	if !ok {
		WriteCreated(w, analysis)
		return
	}

	entry := &database.HistoryEntry{
		UserID: owner,
		First:  database.SubjectOf(first),
	}
	if second != nil {
		s := database.SubjectOf(*second)
		entry.Second = &s
		entry.Score = &analysis.Compatibility.Score
	}

	added, err := h.db.AddHistory(r.Context(), entry, h.cfg.HistoryMax)
	switch {
	case err != nil:
		h.log(r).Error("failed to record history", slog.Any("error", err))
	case added:
		analysis.Recorded = true
		analysis.HistoryID = entry.ID
	}

	WriteCreated(w, analysis)
}

// GetHistory handles GET /api/v1/history
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = l
	}

	entries, err := h.db.ListHistory(r.Context(), h.owner(r), limit)
	if err != nil {
		h.log(r).Error("failed to list history", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve history")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetHistoryEntry handles GET /api/v1/history/{id}
func (h *Handlers) GetHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid history entry ID")
		return
	}

	entry, err := h.db.GetHistoryEntry(r.Context(), h.owner(r), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "History entry not found")
			return
		}
		h.log(r).Error("failed to get history entry", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve history entry")
		return
	}

	WriteSuccess(w, entry)
}

// ClearHistory handles DELETE /api/v1/history
func (h *Handlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := h.db.ClearHistory(r.Context(), h.owner(r))
	if err != nil {
		h.log(r).Error("failed to clear history", slog.Any("error", err))
		WriteInternalError(w, "Failed to clear history")
		return
	}

	WriteSuccess(w, map[string]int64{"deleted": n})
}

// resolveSign resolves input, writing the error response itself when it
// fails.
func (h *Handlers) resolveSign(w http.ResponseWriter, r *http.Request, input string) (zodiac.Sign, bool) {
	sign, err := h.resolver.ResolveSign(input)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidDate) {
			WriteInvalidDate(w, err)
			return zodiac.Sign{}, false
		}
		h.log(r).Error("failed to resolve sign", slog.String("input", input), slog.Any("error", err))
		WriteInternalError(w, "Failed to resolve sign")
		return zodiac.Sign{}, false
	}
	return sign, true
}

func (h *Handlers) log(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context(), h.logger)
}

// owner is the history owner of a request that passed AuthMiddleware.
func (h *Handlers) owner(r *http.Request) string {
	id, _ := HistoryOwner(h.cfg, r)
	return id
}

// analyze assembles the analysis of first and an optional second sign.
func analyze(first zodiac.Sign, second *zodiac.Sign) Analysis {
	a := Analysis{
		First:          first,
		Second:         second,
		Summary:        singleDateSummary,
		CelebrityMatch: celebrityMatch(first),
	}
	if second != nil {
		c := zodiac.Compare(first, *second)
		a.Compatibility = &c
		a.Summary = pairSummary(first, *second, c)
	}
	return a
}
