package cmd

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := serve(t, NewRouter(zerolog.Nop()), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestXIRRHandler(t *testing.T) {
	body := `{"flows":[{"date":"2025-01-01","amount":1100},{"date":"2024-01-01","amount":-1000}]}`
	w := serve(t, NewRouter(zerolog.Nop()), http.MethodPost, "/api/v1/xirr", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got XIRRResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.Rate)
	// 2024 has 366 days
	assert.InDelta(t, math.Pow(1.1, 365.0/366.0)-1, *got.Rate, 1e-6)
	assert.Empty(t, got.Reason)
}

func TestXIRRHandler_NoResult(t *testing.T) {
	body := `{"flows":[{"date":"2024-01-01","amount":-1000}]}`
	w := serve(t, NewRouter(zerolog.Nop()), http.MethodPost, "/api/v1/xirr", body)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Contains(t, got, "rate")
	assert.Nil(t, got["rate"])
	assert.Contains(t, got["reason"], "insufficient data")
}

func TestXIRRHandler_Degenerate(t *testing.T) {
	body := `{"flows":[{"date":"2024-01-01","amount":-1000},{"date":"2024-06-01","amount":-500}]}`
	w := serve(t, NewRouter(zerolog.Nop()), http.MethodPost, "/api/v1/xirr", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rate":0}`, w.Body.String())
}

func TestTWRHandler(t *testing.T) {
	body := `{
	  "valuations":[{"date":"2024-01-01","value":1000},{"date":"2024-01-31","value":1600}],
	  "flows":[{"date":"2024-01-16","amount":-500}]
	}`
	w := serve(t, NewRouter(zerolog.Nop()), http.MethodPost, "/api/v1/twr", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got TWRResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.Percent)
	assert.InDelta(t, 8, *got.Percent, 1e-9)
}

func TestTWRHandler_NoResult(t *testing.T) {
	body := `{"valuations":[{"date":"2024-01-01","value":1000}]}`
	w := serve(t, NewRouter(zerolog.Nop()), http.MethodPost, "/api/v1/twr", body)
	require.Equal(t, http.StatusOK, w.Code)

	var got TWRResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Nil(t, got.Percent)
	assert.Contains(t, got.Reason, "insufficient data")
}

func TestHandlers_BadRequest(t *testing.T) {
	testCases := []struct {
		name, path, body string
	}{
		{"empty body", "/api/v1/xirr", ""},
		{"invalid date", "/api/v1/xirr", `{"flows":[{"date":"someday","amount":1}]}`},
		{"invalid amount", "/api/v1/xirr", `{"flows":[{"date":"2024-01-01","amount":"1"}]}`},
		{"flow without date", "/api/v1/xirr", `{"flows":[{"amount":-1000},{"date":"2024-01-01","amount":1100}]}`},
		{"valuation without date", "/api/v1/twr", `{"valuations":[{"date":"2024-01-01","value":1},{"value":2}]}`},
		{"twr flow without date", "/api/v1/twr", `{"valuations":[{"date":"2024-01-01","value":1},{"date":"2024-02-01","value":2}],"flows":[{"amount":-1}]}`},
		{"unsorted valuations", "/api/v1/twr", `{"valuations":[{"date":"2024-02-01","value":1},{"date":"2024-01-01","value":1}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, NewRouter(zerolog.Nop()), http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var got ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "INVALID_REQUEST", got.Error.Code)
			assert.NotEmpty(t, got.Error.Message)
		})
	}
}

func TestNewHandler_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	NewHandler(zerolog.Nop()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var b strings.Builder
	log := zerolog.New(&b)
	serve(t, NewRouter(log), http.MethodPost, "/api/v1/xirr", "")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(b.String()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/api/v1/xirr", line["path"])
	assert.EqualValues(t, http.StatusBadRequest, line["status"])
}
