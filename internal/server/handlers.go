package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Error messages returned to clients when generation fails
const (
	msgExtractFailed    = "Failed to process text with AI."
	msgRecommendFailed  = "Failed to generate recommendations."
	msgRetirementFailed = "Failed to generate a retirement plan."
	msgInsuranceFailed  = "Failed to generate an insurance plan."
	msgInvestmentFailed = "Failed to generate investment recommendations."
	msgLoanFailed       = "Failed to analyze the loan."
)

type extractRequest struct {
	Text string `json:"text"`
}

type recommendRequest struct {
	UserData json.RawMessage `json:"userData"`
}

type calculateRequest struct {
	Facts json.RawMessage `json:"facts"`
}

type breakevenRequest struct {
	Facts json.RawMessage `json:"facts"`
	Field string          `json:"field"`
}

func (s *Server) handleAlive(c *gin.Context) {
	c.String(http.StatusOK, "Server is alive and running!")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	facts, err := s.advisor.ExtractFacts(c.Request.Context(), req.Text)
	if err != nil {
		s.fail(c, err, msgExtractFailed)
		return
	}
	c.JSON(http.StatusOK, facts)
}

func (s *Server) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var userData any
	if len(req.UserData) > 0 {
		if err := json.Unmarshal(req.UserData, &userData); err != nil {
			badRequest(c, err)
			return
		}
	}

	text, err := s.advisor.RecommendTax(c.Request.Context(), userData)
	if err != nil {
		s.fail(c, err, msgRecommendFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": text})
}

// formRequest wraps the advice forms as posted by the web client
type formRequest[T any] struct {
	FormData *T `json:"formData" binding:"required"`
}

func (s *Server) handlePlanRetirement(c *gin.Context) {
	var req formRequest[domain.RetirementRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := s.advisor.PlanRetirement(c.Request.Context(), *req.FormData)
	s.respondPlan(c, plan, err, msgRetirementFailed)
}

func (s *Server) handleCalculateInsurance(c *gin.Context) {
	var req formRequest[domain.InsuranceRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := s.advisor.CalculateInsurance(c.Request.Context(), *req.FormData)
	s.respondPlan(c, plan, err, msgInsuranceFailed)
}

func (s *Server) handleRecommendInvestments(c *gin.Context) {
	var req formRequest[domain.InvestmentRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := s.advisor.RecommendInvestments(c.Request.Context(), *req.FormData)
	s.respondPlan(c, plan, err, msgInvestmentFailed)
}

func (s *Server) handleAnalyzeLoan(c *gin.Context) {
	var req formRequest[domain.LoanRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := s.advisor.AnalyzeLoan(c.Request.Context(), *req.FormData)
	s.respondPlan(c, plan, err, msgLoanFailed)
}

func (s *Server) handleCalculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	facts, err := config.DecodeFactsJSON(req.Facts)
	if err != nil {
		badRequest(c, err)
		return
	}

	analysis, err := s.engine.Analyze(facts)
	if err != nil {
		s.fail(c, err, "Failed to calculate tax.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"newRegime":  analysis.NewRegime,
		"oldRegime":  analysis.OldRegime,
		"comparison": analysis.Comparison,
	})
}

func (s *Server) handleBreakeven(c *gin.Context) {
	var req breakevenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	facts, err := config.DecodeFactsJSON(req.Facts)
	if err != nil {
		badRequest(c, err)
		return
	}

	result, err := breakeven.NewDefaultSolver(s.engine).Solve(c.Request.Context(), breakeven.Request{
		Facts: facts,
		Field: req.Field,
	})
	if err != nil {
		s.fail(c, err, "Failed to find the break-even point.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"field":          result.Request.Field,
		"reachable":      result.Reachable,
		"extraDeduction": result.ExtraDeduction,
		"targetAmount":   result.TargetAmount,
		"base":           result.Base.Comparison,
	})
}

func (s *Server) respondPlan(c *gin.Context, plan string, err error, message string) {
	if err != nil {
		s.fail(c, err, message)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// fail maps an error to a response: invalid input is the client's fault,
// everything else is reported with the given message.
func (s *Server) fail(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	if errors.Is(err, domain.ErrInvalidInput) {
		badRequest(c, err)
		return
	}
	s.logger.Error(message,
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
