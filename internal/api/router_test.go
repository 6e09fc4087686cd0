package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/creditlens/internal/api/handlers"
	"github.com/wonny/creditlens/internal/assessment"
	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/internal/testutil"
	"github.com/wonny/creditlens/pkg/logger"
)

var generousLimit = RateLimit{PerSecond: 1000, Burst: 1000}

func newTestRouter(t *testing.T, limit RateLimit) http.Handler {
	t.Helper()
	log := logger.Nop()
	service, err := assessment.NewService(nil, assessment.Options{CacheEnabled: true, CacheTTL: time.Minute}, log)
	require.NoError(t, err)

	return NewRouter(
		handlers.NewAssessmentHandler(service, log),
		handlers.NewLoanSocket(service, log),
		limit,
		log,
	)
}

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, generousLimit)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAssess(t *testing.T) {
	router := newTestRouter(t, generousLimit)

	rec := post(t, router, "/api/assessments", assessment.Request{
		Dataset: testutil.CompanyDataset(),
		Year:    2022,
		Bureau:  testutil.CleanBureau(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got assessment.Assessment
	decode(t, rec, &got)
	assert.Equal(t, 54, got.Score.Score)
	assert.Equal(t, 69, got.Blended.Score)
	assert.Equal(t, contracts.CategoryFair, got.Blended.Category)
	assert.NotEmpty(t, got.RunID)
	assert.Len(t, got.Loan.Schedule, 36)
}

func TestAssess_Errors(t *testing.T) {
	router := newTestRouter(t, generousLimit)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"malformed json", `{"dataset":`, http.StatusBadRequest},
		{"unknown field", `{"datset": {}, "year": 2023}`, http.StatusBadRequest},
		{"missing dataset", `{"year": 2023}`, http.StatusBadRequest},
		{"unsupported statement", `{"dataset": {"Notes": [{"field_name": "x", "value": 1, "year": 2023}]}, "year": 2023}`, http.StatusBadRequest},
		{"invalid year", `{"dataset": {"Balance Sheet": [{"field_name": "Total Assets", "value": 1, "year": 2023}]}, "year": 0}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/assessments", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body map[string]string
			decode(t, rec, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAssessYears(t *testing.T) {
	router := newTestRouter(t, generousLimit)

	rec := post(t, router, "/api/assessments/years", handlers.YearsRequest{Dataset: testutil.CompanyDataset()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got handlers.YearsResponse
	decode(t, rec, &got)
	require.Equal(t, 3, got.Count)
	assert.Equal(t, 2021, got.Assessments[0].Year)
	assert.True(t, got.Assessments[0].Score.Provisional)
	assert.Equal(t, 100, got.Assessments[2].Score.Score)
}

func TestValidation(t *testing.T) {
	router := newTestRouter(t, generousLimit)

	rec := post(t, router, "/api/validation", handlers.DatasetYear{Dataset: testutil.CompanyDataset(), Year: 2021})
	require.Equal(t, http.StatusOK, rec.Code)

	var got contracts.ValidationResult
	decode(t, rec, &got)
	assert.False(t, got.IsValid)
	assert.True(t, got.HasIssue(contracts.IssueBalanceSheetViolation, contracts.FieldShareholdersEquity))
	assert.Equal(t, 300_000.0, got.Corrections[contracts.FieldShareholdersEquity])
}

func TestLoanSchedule(t *testing.T) {
	router := newTestRouter(t, generousLimit)

	rec := post(t, router, "/api/loan/schedule", handlers.LoanScheduleRequest{
		Dataset: testutil.CompanyDataset(),
		Year:    2023,
		Loan:    contracts.LoanParameters{LoanAmount: 120_000, InterestRate: 10, RepaymentTermYears: 3},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got contracts.LoanStructure
	decode(t, rec, &got)
	assert.Equal(t, 3872.0, got.EMI)
	assert.Len(t, got.Schedule, 36)

	rec = post(t, router, "/api/loan/schedule", handlers.LoanScheduleRequest{
		Dataset: testutil.CompanyDataset(),
		Year:    2023,
		Loan:    contracts.LoanParameters{LoanAmount: 120_000, InterestRate: 10},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, loan := range []contracts.LoanParameters{
		{LoanAmount: 120_000, InterestRate: 10, RepaymentTermYears: 100_000_000},
		{LoanAmount: 120_000, InterestRate: 1e308, RepaymentTermYears: 3},
	} {
		rec = post(t, router, "/api/loan/schedule", handlers.LoanScheduleRequest{
			Dataset: testutil.CompanyDataset(),
			Year:    2023,
			Loan:    loan,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestAssessCAD(t *testing.T) {
	router := newTestRouter(t, generousLimit)
	facts := contracts.CADLoanFacts{
		RequestedAmount:     700_000,
		LoanTenorMonths:     6,
		CollateralValue:     1_000_000,
		DocumentsCoverage:   95,
		TradingHistoryYears: 7,
	}

	t.Run("explicit ratios", func(t *testing.T) {
		rec := post(t, router, "/api/cad/assessments", handlers.CADRequest{
			Facts:  facts,
			Ratios: &contracts.CADRatios{CurrentRatio: 1.6, DebtServiceCoverage: 2.1, ProfitMargin: 8},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var got contracts.CADResult
		decode(t, rec, &got)
		assert.Equal(t, 100, got.Score)
		assert.Equal(t, "Approve - standard terms", got.Decision)
	})

	t.Run("ratios from dataset", func(t *testing.T) {
		rec := post(t, router, "/api/cad/assessments", handlers.CADRequest{
			Facts:   facts,
			Dataset: testutil.CompanyDataset(),
			Year:    2022,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var got contracts.CADResult
		decode(t, rec, &got)
		assert.Equal(t, 80, got.Score)
	})

	t.Run("invalid facts", func(t *testing.T) {
		bad := facts
		bad.DocumentsCoverage = 140
		rec := post(t, router, "/api/cad/assessments", handlers.CADRequest{Facts: bad, Ratios: &contracts.CADRatios{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, RateLimit{PerSecond: 0.001, Burst: 1})
	body := handlers.DatasetYear{Dataset: testutil.CompanyDataset(), Year: 2023}

	assert.Equal(t, http.StatusOK, post(t, router, "/api/validation", body).Code)

	rec := post(t, router, "/api/validation", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health is outside the limited subrouter
	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestLoanWebSocket(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, generousLimit))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/loan"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(handlers.LoanSessionStart{Dataset: testutil.CompanyDataset(), Year: 2023}))

	var ready handlers.LoanMessage
	require.NoError(t, conn.ReadJSON(&ready))
	require.Equal(t, handlers.MessageReady, ready.Type)
	require.NotNil(t, ready.Assessment)
	assert.Equal(t, 228_000.0, ready.Assessment.Suggestion.Amount)

	// each parameter change is answered with a fresh structure
	for _, amount := range []float64{120_000, 240_000} {
		require.NoError(t, conn.WriteJSON(contracts.LoanParameters{LoanAmount: amount, InterestRate: 10, RepaymentTermYears: 3}))

		var msg handlers.LoanMessage
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, handlers.MessageStructure, msg.Type)
		assert.Equal(t, amount, msg.Structure.Parameters.LoanAmount)
	}

	// invalid parameters keep the session open
	require.NoError(t, conn.WriteJSON(contracts.LoanParameters{LoanAmount: -1, InterestRate: 10, RepaymentTermYears: 3}))
	var errMsg handlers.LoanMessage
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, handlers.MessageError, errMsg.Type)
	assert.Contains(t, errMsg.Error, "invalid loan parameters")

	require.NoError(t, conn.WriteJSON(contracts.LoanParameters{LoanAmount: 50_000, InterestRate: 0, RepaymentTermYears: 1}))
	var last handlers.LoanMessage
	require.NoError(t, conn.ReadJSON(&last))
	assert.Equal(t, 4167.0, last.Structure.EMI)
}

func TestLoanWebSocket_InvalidStart(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, generousLimit))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/loan"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(handlers.LoanSessionStart{Year: 2023}))

	var msg handlers.LoanMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, handlers.MessageError, msg.Type)
	assert.Contains(t, msg.Error, "dataset is nil")
}
