package server

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/financing-simulator/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func TestHandleScheduleSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	rr := performUpload(t, handler, string(data), "test_config.yaml")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Simulations) != 2 {
		t.Fatalf("expected 2 active simulations, got %d", len(resp.Simulations))
	}
	if resp.CSV == "" {
		t.Fatal("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
	if resp.Config == nil {
		t.Fatal("expected config data in response")
	}
	if resp.ConfigYAML == "" {
		t.Fatal("expected config YAML in response")
	}

	aurora := resp.Simulations[0]
	if aurora.ID != "residencial-aurora" {
		t.Fatalf("unexpected first simulation %q", aurora.ID)
	}
	if aurora.Result.Schedule == nil || aurora.Result.Error != "" {
		t.Fatalf("expected schedule for first simulation, got error %q", aurora.Result.Error)
	}
	if len(aurora.Result.Rows) != 25 {
		t.Errorf("expected 25 rows, got %d", len(aurora.Result.Rows))
	}
	if aurora.Inputs == nil || aurora.Inputs.CorrectionLabel != constants.DefaultCorrectionLabel {
		t.Errorf("expected normalized correction label in inputs")
	}
}

func TestHandleScheduleEditorSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	var payload map[string]interface{}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to unmarshal yaml: %v", err)
	}

	rr := performEditorJSON(t, handler, map[string]interface{}{"config": payload}, "/api/editor/schedule")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Simulations) != 2 {
		t.Fatalf("expected 2 simulations, got %d", len(resp.Simulations))
	}
	vale := resp.Simulations[1]
	if vale.Result.Schedule == nil {
		t.Fatalf("expected schedule, got error %q", vale.Result.Error)
	}
	if math.Abs(vale.Result.KPIs.TotalInterest-20) > 1e-9 {
		t.Errorf("expected total interest 20, got %v", vale.Result.KPIs.TotalInterest)
	}
	if resp.ConfigYAML == "" {
		t.Fatal("expected config YAML in response")
	}
}

func TestHandleScheduleEditorInvalidConfigPayload(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := performEditorJSON(t, handler, map[string]interface{}{"config": "nope"}, "/api/editor/schedule")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleScheduleReportsValidationErrorPerSimulation(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	configYAML := `
simulations:
  - id: sem-prazo
    title: Sem prazo
    active: true
    inputs:
      financed_value: 1000
`

	rr := performUpload(t, handler, configYAML, "config.yaml")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Simulations) != 1 {
		t.Fatalf("expected 1 simulation, got %d", len(resp.Simulations))
	}
	result := resp.Simulations[0].Result
	if result.Schedule != nil {
		t.Error("expected no schedule for simulation without term")
	}
	if !strings.Contains(result.Error, "construction months and grace months are required") {
		t.Errorf("unexpected error %q", result.Error)
	}
	if len(resp.Warnings) == 0 {
		t.Error("expected configuration warnings")
	}
}

func TestHandleScheduleDuplicateIDs(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	configYAML := `
simulations:
  - id: same
    active: true
  - id: same
    active: true
`

	rr := performUpload(t, handler, configYAML, "config.yaml")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "failed to process simulations") {
		t.Fatalf("expected processing error, got %q", resp["error"])
	}
}

func TestHandleInputsEditor(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	payload := map[string]interface{}{
		"title": "Obra",
		"inputs": map[string]interface{}{
			"financed_value":      "R$ 1.000,00",
			"construction_months": 2,
			"grace_months":        0,
			"fixed_rate_am":       0.01,
		},
		"changes": []interface{}{
			map[string]interface{}{"field": "management_fee_is_fixed", "value": true},
			map[string]interface{}{"field": "management_fee_fixed_amount", "value": "50,00"},
			map[string]interface{}{"field": "management_fee_months", "value": 2},
		},
	}

	rr := performEditorJSON(t, handler, payload, "/api/editor/inputs")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp inputsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Inputs == nil {
		t.Fatal("expected inputs in response")
	}
	if got := resp.Inputs.FinancedValue.OrZero(); got != 1000 {
		t.Errorf("expected financed value 1000, got %v", got)
	}
	if len(resp.Inputs.ManagementFeeValues) != 2 {
		t.Fatalf("expected 2 management fee values, got %d", len(resp.Inputs.ManagementFeeValues))
	}
	for i, v := range resp.Inputs.ManagementFeeValues {
		if v.OrZero() != 50 {
			t.Errorf("management fee value %d = %v, want 50", i, v.OrZero())
		}
	}
	if resp.Result.Schedule == nil {
		t.Fatalf("expected schedule, got error %q", resp.Result.Error)
	}
	if math.Abs(resp.Result.KPIs.TotalManagementFee-100) > 1e-9 {
		t.Errorf("expected total management fee 100, got %v", resp.Result.KPIs.TotalManagementFee)
	}
}

func TestHandleInputsEditorRejectsInvalidChange(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	payload := map[string]interface{}{
		"inputs": map[string]interface{}{},
		"changes": []interface{}{
			map[string]interface{}{"field": "not_a_field", "value": 1},
		},
	}

	rr := performEditorJSON(t, handler, payload, "/api/editor/inputs")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "change 0 (not_a_field)") {
		t.Fatalf("expected change error, got %q", resp["error"])
	}
}

func TestHandleInputsEditorMissingTerm(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := performEditorJSON(t, handler, map[string]interface{}{"inputs": nil}, "/api/editor/inputs")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp inputsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.Error == "" || resp.Result.Schedule != nil {
		t.Fatalf("expected error-only result, got %+v", resp.Result)
	}
	if resp.Inputs.GraceMonths.OrZero() != constants.DefaultGraceMonths {
		t.Errorf("expected default grace months, got %v", resp.Inputs.GraceMonths.OrZero())
	}
}

func TestHandleConfigExport(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	payload := map[string]interface{}{
		"simulations": []interface{}{
			map[string]interface{}{
				"id":     "sample",
				"active": true,
			},
		},
		"output": map[string]interface{}{
			"format": "pretty",
		},
		"logging": map[string]interface{}{
			"level": "info",
		},
	}

	rr := performEditorJSON(t, handler, payload, "/api/editor/export")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	yamlStr := resp["configYaml"]
	if yamlStr == "" {
		t.Fatal("expected configYaml in response")
	}
	if !strings.Contains(yamlStr, "simulations:") {
		t.Fatalf("expected yaml to contain simulations section, got %q", yamlStr)
	}

	lines := strings.Split(strings.TrimRight(yamlStr, "\n"), "\n")
	orderedTop := make([]string, 0, 3)
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "-") {
			continue
		}
		orderedTop = append(orderedTop, strings.TrimSpace(line))
	}

	if len(orderedTop) != 3 {
		t.Fatalf("expected three top-level keys in yaml, got %v", orderedTop)
	}
	if !strings.HasPrefix(orderedTop[0], "logging:") {
		t.Fatalf("expected logging to be first key, got %q", orderedTop[0])
	}
	if !strings.HasPrefix(orderedTop[1], "output:") {
		t.Fatalf("expected output to be second key, got %q", orderedTop[1])
	}
	if !strings.HasPrefix(orderedTop[2], "simulations:") {
		t.Fatalf("expected simulations to be last key, got %q", orderedTop[2])
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{version: "1.2.3", want: "1.2.3"},
		{version: "  ", want: "dev"},
	}

	for _, tt := range tests {
		handler := NewHandler(nil, 0, tt.version)

		req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["version"] != tt.want {
			t.Errorf("version = %q, want %q", resp["version"], tt.want)
		}
	}
}

func TestHandlersMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/schedule"},
		{http.MethodGet, "/api/editor/schedule"},
		{http.MethodGet, "/api/editor/inputs"},
		{http.MethodGet, "/api/editor/export"},
		{http.MethodPost, "/api/version"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status 405, got %d", tt.method, tt.path, rr.Code)
		}
	}
}

func TestHandleScheduleUploadTooLarge(t *testing.T) {
	handler := NewHandler(zap.NewNop(), 64, "test")

	rr := performUpload(t, handler, strings.Repeat("a", 128), "config.yaml")

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "upload exceeds limit") {
		t.Fatalf("expected upload limit error message, got %q", resp["error"])
	}
}

func TestHandleScheduleMissingFile(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp["error"] != "missing configuration file" {
		t.Fatalf("expected missing file error, got %q", resp["error"])
	}
}

func TestHandleScheduleInvalidYAML(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := performUpload(t, handler, "simulations: [", "config.yaml")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "error reading config data") {
		t.Fatalf("expected parse error message, got %q", resp["error"])
	}
}

func TestStaticAssetsServed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 for index, got %d", rr.Code)
	}

	if !strings.Contains(rr.Body.String(), "Financing Simulator") {
		t.Fatalf("expected HTML body to contain title, got %q", rr.Body.String())
	}

	cssReq := httptest.NewRequest(http.MethodGet, "/styles.css", nil)
	cssRR := httptest.NewRecorder()
	handler.ServeHTTP(cssRR, cssReq)

	if cssRR.Code != http.StatusOK {
		t.Fatalf("expected status 200 for css, got %d", cssRR.Code)
	}
	if !strings.Contains(cssRR.Body.String(), ":root") {
		t.Fatalf("expected CSS body to contain styles, got %q", cssRR.Body.String())
	}
}

func performUpload(t *testing.T, handler http.Handler, content, filename string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func performEditorJSON(t *testing.T, handler http.Handler, payload map[string]interface{}, path string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}
