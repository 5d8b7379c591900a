package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	// opencensus starts its view worker from an init func in the genai dependency tree
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:            "0",
		Environment:     "test",
		AllowedOrigins:  []string{"http://localhost:3000"},
		ShutdownTimeout: time.Second,
	}
}

func newTestServer(gen advisor.Generator) *Server {
	return New(testConfig(), advisor.NewAdvisor(gen, nil, nil), nil, nil)
}

func echoGenerator(reply string) advisor.Generator {
	return advisor.GeneratorFunc(func(context.Context, string, string) (string, error) {
		return reply, nil
	})
}

func failingGenerator() advisor.Generator {
	return advisor.GeneratorFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("upstream unavailable")
	})
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestAlive(t *testing.T) {
	s := newTestServer(nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is alive and running!", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestCORS(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/extract", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/extract", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExtract(t *testing.T) {
	s := newTestServer(echoGenerator("```json\n{\"grossSalary\": 1500000, \"deduction80C\": 150000}\n```"))

	w := post(t, s, "/api/extract", `{"text": "My salary is 15 lakh and I invested 1.5 lakh in ELSS"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var facts domain.FinancialFacts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &facts))
	assert.True(t, facts.GrossSalary.Equal(decimal.NewFromInt(1500000)))
	assert.True(t, facts.Deduction80C.Equal(decimal.NewFromInt(150000)))
	assert.True(t, facts.OtherIncome.IsZero())
}

func TestExtract_Errors(t *testing.T) {
	w := post(t, newTestServer(echoGenerator("{}")), "/api/extract", `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, newTestServer(echoGenerator("{}")), "/api/extract", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, newTestServer(failingGenerator()), "/api/extract", `{"text": "salary 10 lakh"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to process text with AI.", decodeBody(t, w)["error"])

	w = post(t, newTestServer(echoGenerator("no numbers here")), "/api/extract", `{"text": "salary 10 lakh"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecommend(t *testing.T) {
	s := newTestServer(echoGenerator("* Use NPS\n\n" + advisor.Disclaimer))

	w := post(t, s, "/api/recommend", `{"userData": {"grossSalary": 1200000, "bestRegime": "new"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decodeBody(t, w)["recommendations"], "Use NPS")

	w = post(t, s, "/api/recommend", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, newTestServer(failingGenerator()), "/api/recommend", `{"userData": {"grossSalary": 1}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate recommendations.", decodeBody(t, w)["error"])
}

func TestPlanEndpoints(t *testing.T) {
	s := newTestServer(echoGenerator("## Your plan"))

	tests := []struct {
		path string
		body string
	}{
		{"/api/plan-retirement", `{"formData": {"age": "30", "retireAge": "55", "salary": "18", "savings": "6"}}`},
		{"/api/calculate-insurance", `{"formData": {"age": "35", "annualIncome": "20", "dependents": "2", "liabilities": "40"}}`},
		{"/api/recommend-investments", `{"formData": {"amount": "5", "duration": "10", "risk": "high"}}`},
		{"/api/analyze-loan", `{"formData": {"loanAmount": "50", "interestRate": "8.5", "loanTenure": "20"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := post(t, s, tt.path, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "## Your plan", decodeBody(t, w)["plan"])

			w = post(t, s, tt.path, `{}`)
			assert.Equal(t, http.StatusBadRequest, w.Code, "missing formData")
		})
	}
}

func TestPlanEndpoints_MissingField(t *testing.T) {
	s := newTestServer(echoGenerator("## Your plan"))
	w := post(t, s, "/api/analyze-loan", `{"formData": {"loanAmount": "50"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, newTestServer(failingGenerator()), "/api/analyze-loan", `{"formData": {"loanAmount": "50", "interestRate": "8.5", "loanTenure": "20"}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to analyze the loan.", decodeBody(t, w)["error"])
}

func TestInsurance_MissingLiabilities(t *testing.T) {
	s := newTestServer(echoGenerator("## Your plan"))
	w := post(t, s, "/api/calculate-insurance", `{"formData": {"age": "35", "annualIncome": "20", "dependents": "2"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestNew_NilConfig(t *testing.T) {
	s := New(nil, nil, nil, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(t, s, "/api/tax/calculate", `{"facts": {"grossSalary": 1200000, "deduction80C": 50000}}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestNoGeneratorConfigured(t *testing.T) {
	s := New(testConfig(), nil, nil, nil)
	w := post(t, s, "/api/plan-retirement", `{"formData": {"age": "30", "retireAge": "55", "salary": "18", "savings": "6"}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate a retirement plan.", decodeBody(t, w)["error"])
}

func TestCalculate(t *testing.T) {
	s := newTestServer(nil)

	w := post(t, s, "/api/tax/calculate", `{"facts": {"grossSalary": 1200000, "deduction80C": 50000}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		NewRegime  domain.TaxSummary       `json:"newRegime"`
		OldRegime  domain.TaxSummary       `json:"oldRegime"`
		Comparison domain.RegimeComparison `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.NewRegime.TotalTaxPayable.Equal(decimal.NewFromInt(85800)))
	assert.True(t, resp.OldRegime.TotalTaxPayable.Equal(decimal.NewFromInt(148200)))
	assert.Equal(t, domain.RegimeNew, resp.Comparison.Best)
	assert.True(t, resp.Comparison.Savings.Equal(decimal.NewFromInt(62400)))
}

func TestCalculate_Invalid(t *testing.T) {
	s := newTestServer(nil)
	for name, body := range map[string]string{
		"no facts":        `{}`,
		"missing salary":  `{"facts": {"otherIncome": 5}}`,
		"negative amount": `{"facts": {"grossSalary": 100, "deduction80D": -1}}`,
		"huge exponent":   `{"facts": {"grossSalary": 1e2000000}}`,
		"above maximum":   `{"facts": {"grossSalary": 1000000000000001}}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := post(t, s, "/api/tax/calculate", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestBreakeven(t *testing.T) {
	s := newTestServer(nil)

	w := post(t, s, "/api/tax/breakeven", `{"facts": {"grossSalary": 1200000, "deduction80C": 50000}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Field          string                  `json:"field"`
		Reachable      bool                    `json:"reachable"`
		ExtraDeduction decimal.Decimal         `json:"extraDeduction"`
		Base           domain.RegimeComparison `json:"base"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "deduction80D", resp.Field)
	assert.True(t, resp.Reachable)
	assert.True(t, resp.ExtraDeduction.Equal(decimal.NewFromInt(249998)), resp.ExtraDeduction.String())
	assert.Equal(t, domain.RegimeNew, resp.Base.Best)

	w = post(t, s, "/api/tax/breakeven", `{"facts": {"grossSalary": 1200000}, "field": "professionalTax"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBreakeven_ZeroIncome(t *testing.T) {
	s := newTestServer(nil)

	w := post(t, s, "/api/tax/breakeven", `{"facts": {"grossSalary": 0}, "field": "deduction80D"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Reachable      bool            `json:"reachable"`
		ExtraDeduction decimal.Decimal `json:"extraDeduction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Reachable)
	assert.True(t, resp.ExtraDeduction.IsZero(), resp.ExtraDeduction.String())
}

func TestServe_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer(nil).Serve(ctx, ln) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
