package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Sign is the response for /signs/{date}
type Sign struct {
	Date           string `json:"date"`
	Animal         string `json:"animal"`
	Element        string `json:"element"`
	EffectiveYear  int    `json:"effective_year"`
	BoundarySource string `json:"boundary_source"`
	OutOfRange     bool   `json:"out_of_range"`
	Profile        struct {
		Essence     string   `json:"essence"`
		Strength    string   `json:"strength"`
		Shadow      string   `json:"shadow"`
		Tip         string   `json:"tip"`
		Celebrities []string `json:"celebrities"`
	} `json:"profile"`
}

// Boundary is the response for /boundaries/{year}
type Boundary struct {
	Year     int `json:"year"`
	Boundary struct {
		Month int `json:"month"`
		Day   int `json:"day"`
	} `json:"boundary"`
	Source     string `json:"source"`
	OutOfRange bool   `json:"out_of_range"`
}

// Analysis is the response for /compatibility and /analyses
type Analysis struct {
	First         Sign  `json:"first"`
	Second        *Sign `json:"second"`
	Compatibility *struct {
		Score       int    `json:"score"`
		Tier        string `json:"tier"`
		SharedTriad bool   `json:"shared_triad"`
	} `json:"compatibility"`
	Summary   string `json:"summary"`
	Recorded  bool   `json:"recorded"`
	HistoryID int64  `json:"history_id"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Zodiac API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testKnownSigns()
	tr.testBoundaries()
	tr.testCompatibility()
	tr.testEdgeCases()
	tr.testHistory()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := json.Unmarshal(resp.Data, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testKnownSigns() {
	tr.printSection("Known Signs")

	tests := []struct {
		date    string
		animal  string
		element string
		year    int
	}{
		{"1990-05-15", "Horse", "Metal", 1990},
		{"1990-01-10", "Snake", "Earth", 1989},
		{"2000-02-05", "Dragon", "Metal", 2000},
		{"2000-02-04", "Rabbit", "Earth", 1999},
		{"2024-02-10", "Dragon", "Wood", 2024},
		{"2024-02-29", "Dragon", "Wood", 2024},
	}

	for _, tt := range tests {
		var sign Sign
		if err := tr.getData("/api/v1/signs/"+tt.date, &sign); err != nil {
			tr.recordError(tt.date, err.Error())
			continue
		}

		if sign.Animal != tt.animal || sign.Element != tt.element || sign.EffectiveYear != tt.year {
			tr.recordError(tt.date, fmt.Sprintf("got %s %s (%d), want %s %s (%d)",
				sign.Element, sign.Animal, sign.EffectiveYear, tt.element, tt.animal, tt.year))
			continue
		}

		tr.recordSuccess(fmt.Sprintf("%s: %s %s [%d, %s]",
			tt.date, sign.Element, sign.Animal, sign.EffectiveYear, sign.BoundarySource))

		if tr.verbose {
			tr.printSignDetail(&sign)
		}
	}
}

func (tr *TestRunner) testBoundaries() {
	tr.printSection("Boundaries")

	for _, year := range []int{1900, 1990, 2024, 2100} {
		var b Boundary
		if err := tr.getData(fmt.Sprintf("/api/v1/boundaries/%d", year), &b); err != nil {
			tr.recordError(fmt.Sprintf("Boundary %d", year), err.Error())
			continue
		}
		if b.OutOfRange {
			tr.recordError(fmt.Sprintf("Boundary %d", year), "reported out of range")
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%d: %02d-%02d [%s]", year, b.Boundary.Month, b.Boundary.Day, b.Source))
	}

	var b Boundary
	if err := tr.getData("/api/v1/boundaries/1850", &b); err != nil {
		tr.recordError("Boundary 1850", err.Error())
	} else if !b.OutOfRange || b.Source != "fallback" {
		tr.recordError("Boundary 1850", "should fall back outside the supported range")
	} else {
		tr.recordSuccess(fmt.Sprintf("1850: fallback %02d-%02d", b.Boundary.Month, b.Boundary.Day))
	}
}

func (tr *TestRunner) testCompatibility() {
	tr.printSection("Compatibility")

	var ab, ba Analysis
	if err := tr.getData("/api/v1/compatibility?a=1990-05-15&b=1995-05-01", &ab); err != nil {
		tr.recordError("Compatibility", err.Error())
		return
	}
	if err := tr.getData("/api/v1/compatibility?a=1995-05-01&b=1990-05-15", &ba); err != nil {
		tr.recordError("Compatibility (swapped)", err.Error())
		return
	}
	if ab.Compatibility == nil || ba.Compatibility == nil {
		tr.recordError("Compatibility", "missing score")
		return
	}

	if ab.Compatibility.Score == 60 {
		tr.recordSuccess(fmt.Sprintf("Horse Metal + Pig Wood: %d (%s)", ab.Compatibility.Score, ab.Compatibility.Tier))
	} else {
		tr.recordError("Compatibility", fmt.Sprintf("score %d, want 60", ab.Compatibility.Score))
	}

	if ab.Compatibility.Score == ba.Compatibility.Score {
		tr.recordSuccess("Score is symmetric")
	} else {
		tr.recordError("Symmetry", fmt.Sprintf("%d vs %d", ab.Compatibility.Score, ba.Compatibility.Score))
	}

	if tr.verbose {
		fmt.Printf("    Summary: %s\n\n", ab.Summary)
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	// Invalid date format
	resp, _ := tr.getRaw("/api/v1/signs/invalid")
	if resp != nil && resp.StatusCode == 400 {
		tr.recordSuccess("Invalid date format rejected")
	} else {
		tr.recordError("Invalid date", "Should return 400")
	}

	// Impossible calendar date
	resp2, _ := tr.getRaw("/api/v1/signs/2023-02-29")
	if resp2 != nil && resp2.StatusCode == 400 {
		tr.recordSuccess("Non-leap February 29 rejected")
	} else {
		tr.recordError("Impossible date", "Should reject 2023-02-29")
	}

	// Missing parameter for compatibility
	resp3, _ := tr.getRaw("/api/v1/compatibility?a=1990-05-15")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Missing b parameter rejected")
	} else {
		tr.recordError("Missing param", "Should reject missing b")
	}

	// Out of range is advisory, not an error
	var sign Sign
	if err := tr.getData("/api/v1/signs/2150-06-01", &sign); err != nil {
		tr.recordError("Out of range", err.Error())
	} else if !sign.OutOfRange {
		tr.recordError("Out of range", "out_of_range flag not set for 2150")
	} else {
		tr.recordSuccess(fmt.Sprintf("2150-06-01 resolved with advisory: %s %s", sign.Element, sign.Animal))
	}
}

func (tr *TestRunner) testHistory() {
	tr.printSection("History")

	body := map[string]string{"date1": "1990-05-15", "date2": "1995-05-01"}
	resp, err := tr.do(http.MethodPost, "/api/v1/analyses", body)
	if err != nil {
		tr.recordError("Create analysis", err.Error())
		return
	}
	var analysis Analysis
	if err := json.Unmarshal(resp.Data, &analysis); err != nil {
		tr.recordError("Create analysis", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Analysis created (recorded=%v)", analysis.Recorded))

	resp, err = tr.do(http.MethodGet, "/api/v1/history", nil)
	if err != nil {
		tr.recordError("List history", err.Error())
		return
	}
	var list struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		tr.recordError("List history", err.Error())
		return
	}
	if list.Count > 0 {
		tr.recordSuccess(fmt.Sprintf("History lists %d entries", list.Count))
	} else {
		tr.recordError("List history", "history is empty after an analysis")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	return tr.do(http.MethodGet, path, nil)
}

func (tr *TestRunner) getData(path string, target interface{}) error {
	resp, err := tr.get(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) do(method, path string, body interface{}) (*APIResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	return resp, nil
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printSignDetail(s *Sign) {
	fmt.Printf("    Essence:  %s\n", s.Profile.Essence)
	fmt.Printf("    Strength: %s\n", s.Profile.Strength)
	fmt.Printf("    Shadow:   %s\n", s.Profile.Shadow)
	fmt.Printf("    Tip:      %s\n", s.Profile.Tip)
	if len(s.Profile.Celebrities) > 0 {
		fmt.Printf("    Celebrities: %s\n", strings.Join(s.Profile.Celebrities, ", "))
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("api-key", os.Getenv("API_KEY"), "API key for history endpoints")
	verbose := flag.Bool("v", false, "Verbose output (show profile details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	_, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
