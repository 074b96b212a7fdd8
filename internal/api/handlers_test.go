package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zapponejosh/zodiac-api/internal/calendar"
	"github.com/zapponejosh/zodiac-api/internal/config"
	"github.com/zapponejosh/zodiac-api/internal/database"
	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testEnv sets up a complete test environment with database, config, and router
type testEnv struct {
	db      *database.DB
	cfg     *config.Config
	router  http.Handler
	apiKey  string
	cleanup func()
}

// setupTest creates a fresh test environment
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	dbCfg := database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	db, err := database.Open(dbCfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	apiKey := "test-key-32-characters-minimum-length"
	cfg := &config.Config{
		Port:          8080,
		Env:           config.EnvProduction,
		DatabasePath:  ":memory:",
		APIKey:        apiKey,
		LogLevel:      "error",
		LogFormat:     "text",
		MinYear:       calendar.DefaultMinYear,
		MaxYear:       calendar.DefaultMaxYear,
		SignCacheSize: zodiac.DefaultSignCacheSize,
		HistoryMax:    5,
	}

	ephemeris, err := calendar.NewDefaultEphemeris(cfg.MinYear, cfg.MaxYear, logger)
	if err != nil {
		t.Fatalf("build ephemeris: %v", err)
	}
	resolver := zodiac.NewResolver(ephemeris,
		zodiac.WithLogger(logger),
		zodiac.WithSignCacheSize(cfg.SignCacheSize),
	)

	handlers := NewHandlers(db, resolver, cfg, logger)

	return &testEnv{
		db:     db,
		cfg:    cfg,
		router: SetupRoutes(handlers, cfg, logger),
		apiKey: apiKey,
		cleanup: func() {
			db.Close()
		},
	}
}

// do sends a request through the full router.
func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// makeRequest is a helper to make HTTP requests with optional API key
func makeRequest(method, path string, body interface{}, apiKey string) *http.Request {
	var bodyReader io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonData)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	return req
}

// parseResponse parses JSON response
func parseResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v, body: %s", err, rr.Body.String())
	}
}

// assertError checks status and error code of a failed response.
func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, status, rr.Body.String())
	}
	var resp Response
	parseResponse(t, rr, &resp)
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error == nil || resp.Error.Code != code {
		t.Errorf("Error = %+v, want code %s", resp.Error, code)
	}
}

type analysisResponse struct {
	Success bool     `json:"success"`
	Data    Analysis `json:"data"`
}

type historyResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Entries []database.HistoryEntry `json:"entries"`
		Count   int                     `json:"count"`
	} `json:"data"`
}

// =============================================================================
// HEALTH
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/health", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Status         string         `json:"status"`
			SupportedRange map[string]int `json:"supported_range"`
		} `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if resp.Data.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Data.Status)
	}
	if resp.Data.SupportedRange["min_year"] != 1900 || resp.Data.SupportedRange["max_year"] != 2100 {
		t.Errorf("supported_range = %v", resp.Data.SupportedRange)
	}
}

// =============================================================================
// SIGNS AND BOUNDARIES
// =============================================================================

func TestGetSign(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	tests := []struct {
		date          string
		animal        zodiac.Animal
		element       zodiac.Element
		effectiveYear int
	}{
		{"1990-05-15", zodiac.Horse, zodiac.Metal, 1990},
		{"1990-01-10", zodiac.Snake, zodiac.Earth, 1989},
		{"2024-02-10", zodiac.Dragon, zodiac.Wood, 2024},
		{"2024-02-09", zodiac.Rabbit, zodiac.Water, 2023},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			rr := env.do(makeRequest("GET", "/api/v1/signs/"+tt.date, nil, ""))
			if rr.Code != http.StatusOK {
				t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
			}

			var resp struct {
				Data zodiac.Sign `json:"data"`
			}
			parseResponse(t, rr, &resp)

			if resp.Data.Animal != tt.animal {
				t.Errorf("Animal = %v, want %v", resp.Data.Animal, tt.animal)
			}
			if resp.Data.Element != tt.element {
				t.Errorf("Element = %v, want %v", resp.Data.Element, tt.element)
			}
			if resp.Data.EffectiveYear != tt.effectiveYear {
				t.Errorf("EffectiveYear = %d, want %d", resp.Data.EffectiveYear, tt.effectiveYear)
			}
			if resp.Data.OutOfRange {
				t.Error("OutOfRange = true, want false")
			}
		})
	}
}

func TestGetSign_InvalidDate(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	for _, date := range []string{"1990-02-30", "15-05-1990", "tomorrow"} {
		rr := env.do(makeRequest("GET", "/api/v1/signs/"+date, nil, ""))
		assertError(t, rr, http.StatusBadRequest, CodeInvalidDate)
	}
}

func TestGetSign_OutOfRange(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/api/v1/signs/1850-06-01", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Data zodiac.Sign `json:"data"`
	}
	parseResponse(t, rr, &resp)

	if !resp.Data.OutOfRange {
		t.Error("OutOfRange = false, want true")
	}
	if resp.Data.BoundarySource != calendar.SourceFallback {
		t.Errorf("BoundarySource = %q, want %q", resp.Data.BoundarySource, calendar.SourceFallback)
	}
	if resp.Data.LunarBoundary != calendar.FallbackBoundary {
		t.Errorf("LunarBoundary = %v, want %v", resp.Data.LunarBoundary, calendar.FallbackBoundary)
	}
}

func TestGetBoundary(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/api/v1/boundaries/2024", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Data BoundaryInfo `json:"data"`
	}
	parseResponse(t, rr, &resp)

	want := calendar.Boundary{Month: time.February, Day: 10}
	if resp.Data.Boundary != want {
		t.Errorf("Boundary = %v, want %v", resp.Data.Boundary, want)
	}
	if resp.Data.Source != calendar.SourceTable {
		t.Errorf("Source = %q, want %q", resp.Data.Source, calendar.SourceTable)
	}
	if resp.Data.OutOfRange {
		t.Error("OutOfRange = true, want false")
	}

	rr = env.do(makeRequest("GET", "/api/v1/boundaries/2500", nil, ""))
	parseResponse(t, rr, &resp)
	if !resp.Data.OutOfRange {
		t.Error("year 2500: OutOfRange = false, want true")
	}
}

func TestGetBoundary_InvalidYear(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/api/v1/boundaries/soon", nil, ""))
	assertError(t, rr, http.StatusBadRequest, CodeBadRequest)
}

// =============================================================================
// COMPATIBILITY AND ANALYSES
// =============================================================================

func TestGetCompatibility(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/api/v1/compatibility?a=1990-05-15&b=1995-05-01", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp analysisResponse
	parseResponse(t, rr, &resp)

	c := resp.Data.Compatibility
	if c == nil {
		t.Fatal("Compatibility = nil")
	}
	if c.Score != 60 {
		t.Errorf("Score = %d, want 60", c.Score)
	}
	if c.Tier != zodiac.TierModerateFriction {
		t.Errorf("Tier = %q, want %q", c.Tier, zodiac.TierModerateFriction)
	}
	if resp.Data.Second == nil || resp.Data.Second.Animal != zodiac.Pig {
		t.Errorf("Second = %+v, want Pig", resp.Data.Second)
	}
	if !strings.Contains(resp.Data.Summary, "Horse and Pig") {
		t.Errorf("Summary = %q, want it to name both animals", resp.Data.Summary)
	}
}

func TestGetCompatibility_Symmetric(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var ab, ba analysisResponse
	parseResponse(t, env.do(makeRequest("GET", "/api/v1/compatibility?a=1984-03-01&b=2001-12-24", nil, "")), &ab)
	parseResponse(t, env.do(makeRequest("GET", "/api/v1/compatibility?a=2001-12-24&b=1984-03-01", nil, "")), &ba)

	if ab.Data.Compatibility.Score != ba.Data.Compatibility.Score {
		t.Errorf("Score(a,b) = %d, Score(b,a) = %d", ab.Data.Compatibility.Score, ba.Data.Compatibility.Score)
	}
}

func TestGetCompatibility_MissingParam(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/api/v1/compatibility?a=1990-05-15", nil, ""))
	assertError(t, rr, http.StatusBadRequest, CodeBadRequest)

	rr = env.do(makeRequest("GET", "/api/v1/compatibility?a=1990-05-15&b=1990-13-01", nil, ""))
	assertError(t, rr, http.StatusBadRequest, CodeInvalidDate)
}

func TestCreateAnalysis_Pair(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	body := map[string]string{"date1": "1990-05-15", "date2": "1995-05-01"}
	rr := env.do(makeRequest("POST", "/api/v1/analyses", body, env.apiKey))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp analysisResponse
	parseResponse(t, rr, &resp)

	if !resp.Data.Recorded || resp.Data.HistoryID == 0 {
		t.Errorf("Recorded = %v, HistoryID = %d, want a recorded entry", resp.Data.Recorded, resp.Data.HistoryID)
	}
	if resp.Data.Compatibility == nil || resp.Data.Compatibility.Score != 60 {
		t.Errorf("Compatibility = %+v, want score 60", resp.Data.Compatibility)
	}
	if resp.Data.CelebrityMatch == "" {
		t.Error("CelebrityMatch is empty")
	}

	var hist historyResponse
	parseResponse(t, env.do(makeRequest("GET", "/api/v1/history", nil, env.apiKey)), &hist)
	if hist.Data.Count != 1 {
		t.Fatalf("history count = %d, want 1", hist.Data.Count)
	}
	e := hist.Data.Entries[0]
	if e.First.Animal != zodiac.Horse || e.Second == nil || e.Second.Animal != zodiac.Pig {
		t.Errorf("history entry = %+v", e)
	}
	if e.Score == nil || *e.Score != 60 {
		t.Errorf("history score = %v, want 60", e.Score)
	}
}

func TestCreateAnalysis_SingleDate(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("POST", "/api/v1/analyses", map[string]string{"date1": "1990-01-10"}, env.apiKey))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d, body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp analysisResponse
	parseResponse(t, rr, &resp)

	if resp.Data.Second != nil || resp.Data.Compatibility != nil {
		t.Errorf("single date analysis has a second sign or score: %+v", resp.Data)
	}
	if resp.Data.Summary != singleDateSummary {
		t.Errorf("Summary = %q, want %q", resp.Data.Summary, singleDateSummary)
	}
	if resp.Data.First.Animal != zodiac.Snake {
		t.Errorf("First.Animal = %v, want Snake", resp.Data.First.Animal)
	}
}

func TestCreateAnalysis_RepeatNotRecorded(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	body := map[string]string{"date1": "1990-05-15", "date2": "1995-05-01"}
	env.do(makeRequest("POST", "/api/v1/analyses", body, env.apiKey))

	rr := env.do(makeRequest("POST", "/api/v1/analyses", body, env.apiKey))
	var resp analysisResponse
	parseResponse(t, rr, &resp)
	if resp.Data.Recorded {
		t.Error("repeat of the latest analysis was recorded again")
	}

	var hist historyResponse
	parseResponse(t, env.do(makeRequest("GET", "/api/v1/history", nil, env.apiKey)), &hist)
	if hist.Data.Count != 1 {
		t.Errorf("history count = %d, want 1", hist.Data.Count)
	}
}

func TestCreateAnalysis_BadRequests(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	tests := []struct {
		name string
		body interface{}
		code string
		msg  string
	}{
		{"missing date1", map[string]string{"date2": "1990-05-15"}, CodeBadRequest, "date1 is required"},
		{"unknown field", map[string]string{"date1": "1990-05-15", "when": "now"}, CodeBadRequest, "unknown field"},
		{"invalid date1", map[string]string{"date1": "1990-02-30"}, CodeInvalidDate, ""},
		{"invalid date2", map[string]string{"date1": "1990-05-15", "date2": "May 1"}, CodeInvalidDate, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(makeRequest("POST", "/api/v1/analyses", tt.body, env.apiKey))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			var resp Response
			parseResponse(t, rr, &resp)
			if resp.Error == nil || resp.Error.Code != tt.code {
				t.Fatalf("Error = %+v, want code %s", resp.Error, tt.code)
			}
			if !strings.Contains(resp.Error.Message, tt.msg) {
				t.Errorf("Message = %q, want it to contain %q", resp.Error.Message, tt.msg)
			}
		})
	}

	var hist historyResponse
	parseResponse(t, env.do(makeRequest("GET", "/api/v1/history", nil, env.apiKey)), &hist)
	if hist.Data.Count != 0 {
		t.Errorf("failed analyses left %d history entries", hist.Data.Count)
	}
}

func TestCreateAnalysis_UnverifiedKeyNotRecorded(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	for _, key := range []string{"bogus-a", "bogus-b", "bogus-c", ""} {
		rr := env.do(makeRequest("POST", "/api/v1/analyses", map[string]string{"date1": "1990-05-15"}, key))
		if rr.Code != http.StatusCreated {
			t.Fatalf("key %q: Status = %d, want %d", key, rr.Code, http.StatusCreated)
		}
		var resp analysisResponse
		parseResponse(t, rr, &resp)
		if resp.Data.Recorded || resp.Data.HistoryID != 0 {
			t.Errorf("key %q: Recorded = %v, HistoryID = %d, want unrecorded", key, resp.Data.Recorded, resp.Data.HistoryID)
		}
		if resp.Data.First.Animal != zodiac.Horse {
			t.Errorf("key %q: First.Animal = %v, want Horse", key, resp.Data.First.Animal)
		}
	}

	var rows int
	if err := env.db.QueryRow("SELECT COUNT(*) FROM history_entries").Scan(&rows); err != nil {
		t.Fatalf("count history rows: %v", err)
	}
	if rows != 0 {
		t.Errorf("history rows = %d, want 0", rows)
	}
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory_KeepsNewest(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	dates := []string{"1980-06-01", "1981-06-01", "1982-06-01", "1983-06-01", "1984-06-01", "1985-06-01", "1986-06-01"}
	for _, d := range dates {
		rr := env.do(makeRequest("POST", "/api/v1/analyses", map[string]string{"date1": d}, env.apiKey))
		if rr.Code != http.StatusCreated {
			t.Fatalf("POST %s: Status = %d", d, rr.Code)
		}
	}

	var hist historyResponse
	parseResponse(t, env.do(makeRequest("GET", "/api/v1/history", nil, env.apiKey)), &hist)

	if hist.Data.Count != env.cfg.HistoryMax {
		t.Fatalf("history count = %d, want %d", hist.Data.Count, env.cfg.HistoryMax)
	}
	if got := hist.Data.Entries[0].First.Date; got != "1986-06-01" {
		t.Errorf("newest entry = %s, want 1986-06-01", got)
	}

	parseResponse(t, env.do(makeRequest("GET", "/api/v1/history?limit=2", nil, env.apiKey)), &hist)
	if hist.Data.Count != 2 {
		t.Errorf("limited history count = %d, want 2", hist.Data.Count)
	}
}

func TestHistory_RequiresAPIKey(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/api/v1/history", nil, ""))
	assertError(t, rr, http.StatusUnauthorized, CodeUnauthorized)

	rr = env.do(makeRequest("DELETE", "/api/v1/history", nil, "wrong-key"))
	assertError(t, rr, http.StatusUnauthorized, CodeUnauthorized)
}

func TestHistory_DevelopmentWithoutKey(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	env.cfg.Env = config.EnvDevelopment
	env.cfg.APIKey = ""

	env.do(makeRequest("POST", "/api/v1/analyses", map[string]string{"date1": "1990-05-15"}, ""))

	var hist historyResponse
	rr := env.do(makeRequest("GET", "/api/v1/history", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
	parseResponse(t, rr, &hist)
	if hist.Data.Count != 1 {
		t.Errorf("default client history count = %d, want 1", hist.Data.Count)
	}
}

func TestGetHistoryEntry(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	var created analysisResponse
	parseResponse(t, env.do(makeRequest("POST", "/api/v1/analyses", map[string]string{"date1": "1990-05-15"}, env.apiKey)), &created)

	rr := env.do(makeRequest("GET", "/api/v1/history/"+strconv.FormatInt(created.Data.HistoryID, 10), nil, env.apiKey))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp struct {
		Data database.HistoryEntry `json:"data"`
	}
	parseResponse(t, rr, &resp)
	if resp.Data.First.Date != "1990-05-15" {
		t.Errorf("First.Date = %s, want 1990-05-15", resp.Data.First.Date)
	}

	rr = env.do(makeRequest("GET", "/api/v1/history/9999", nil, env.apiKey))
	assertError(t, rr, http.StatusNotFound, CodeNotFound)

	rr = env.do(makeRequest("GET", "/api/v1/history/abc", nil, env.apiKey))
	assertError(t, rr, http.StatusBadRequest, CodeBadRequest)
}

func TestClearHistory(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	for _, d := range []string{"2000-06-01", "2001-06-01"} {
		env.do(makeRequest("POST", "/api/v1/analyses", map[string]string{"date1": d}, env.apiKey))
	}

	rr := env.do(makeRequest("DELETE", "/api/v1/history", nil, env.apiKey))
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp struct {
		Data map[string]int64 `json:"data"`
	}
	parseResponse(t, rr, &resp)
	if resp.Data["deleted"] != 2 {
		t.Errorf("deleted = %d, want 2", resp.Data["deleted"])
	}

	var hist historyResponse
	parseResponse(t, env.do(makeRequest("GET", "/api/v1/history", nil, env.apiKey)), &hist)
	if hist.Data.Count != 0 {
		t.Errorf("history count after clear = %d, want 0", hist.Data.Count)
	}
}

// =============================================================================
// MIDDLEWARE AND ROUTING
// =============================================================================

func TestRequestIDMiddleware(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/health", nil, ""))
	if _, err := uuid.Parse(rr.Header().Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", rr.Header().Get("X-Request-ID"))
	}

	incoming := uuid.NewString()
	req := makeRequest("GET", "/health", nil, "")
	req.Header.Set("X-Request-ID", incoming)
	rr = env.do(req)
	if got := rr.Header().Get("X-Request-ID"); got != incoming {
		t.Errorf("X-Request-ID = %q, want incoming %q", got, incoming)
	}

	req = makeRequest("GET", "/health", nil, "")
	req.Header.Set("X-Request-ID", "not a uuid")
	rr = env.do(req)
	if got := rr.Header().Get("X-Request-ID"); got == "not a uuid" {
		t.Error("malformed X-Request-ID was echoed back")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, makeRequest("GET", "/", nil, ""))
	assertError(t, rr, http.StatusInternalServerError, CodeInternalError)
}

func TestCORSPreflight(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("OPTIONS", "/api/v1/analyses", nil, ""))
	if rr.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}

func TestUnknownRoute(t *testing.T) {
	env := setupTest(t)
	defer env.cleanup()

	rr := env.do(makeRequest("GET", "/api/v1/horoscopes", nil, ""))
	assertError(t, rr, http.StatusNotFound, CodeNotFound)
}

func TestUserIDForKey(t *testing.T) {
	if got := UserIDForKey(""); got != "default" {
		t.Errorf("UserIDForKey(\"\") = %q, want default", got)
	}

	a := UserIDForKey("key-a")
	b := UserIDForKey("key-b")
	if len(a) != 16 {
		t.Errorf("UserIDForKey() = %q, want 16 hex characters", a)
	}
	if a == b {
		t.Error("different keys map to the same user ID")
	}
	if a != UserIDForKey("key-a") {
		t.Error("UserIDForKey() is not stable for a key")
	}
}

func TestHistoryOwner(t *testing.T) {
	prod := &config.Config{Env: config.EnvProduction, APIKey: "secret"}
	dev := &config.Config{Env: config.EnvDevelopment}

	tests := []struct {
		name   string
		cfg    *config.Config
		key    string
		wantID string
		wantOK bool
	}{
		{"configured key", prod, "secret", UserIDForKey("secret"), true},
		{"wrong key", prod, "guess", "", false},
		{"no key", prod, "", "", false},
		{"auth disabled", dev, "", "default", true},
		{"auth disabled ignores key", dev, "anything", "default", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := HistoryOwner(tt.cfg, makeRequest("POST", "/", nil, tt.key))
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("HistoryOwner() = (%q, %v), want (%q, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
