package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// ErrGeneration reports that the text generator failed or returned
// something unusable.
var ErrGeneration = errors.New("text generation failed")

// Advisor turns user input into prompts and returns generated advice
type Advisor struct {
	gen    Generator
	cache  Cache
	logger *zap.Logger
}

// NewAdvisor creates an advisor. A nil cache disables caching and a nil
// logger discards log output.
func NewAdvisor(gen Generator, cache Cache, logger *zap.Logger) *Advisor {
	if cache == nil {
		cache = NopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{gen: gen, cache: cache, logger: logger}
}

// ExtractFacts asks the generator to pull the six financial facts out of
// free text.
func (a *Advisor) ExtractFacts(ctx context.Context, text string) (domain.FinancialFacts, error) {
	if strings.TrimSpace(text) == "" {
		return domain.FinancialFacts{}, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	out, err := a.generate(ctx, domain.AdviceExtract, text)
	if err != nil {
		return domain.FinancialFacts{}, err
	}

	facts, err := config.DecodeFactsJSON([]byte(StripCodeFences(out)))
	if err != nil {
		a.logger.Warn("unusable extraction output", zap.String("output", out), zap.Error(err))
		return domain.FinancialFacts{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return facts, nil
}

// RecommendTax returns markdown tax-saving suggestions for the given data,
// typically a calculation result. The data is sent as JSON.
func (a *Advisor) RecommendTax(ctx context.Context, userData any) (string, error) {
	if userData == nil {
		return "", fmt.Errorf("%w: userData is required", domain.ErrInvalidInput)
	}
	payload, err := json.Marshal(userData)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if s := string(payload); s == "null" || s == "{}" {
		return "", fmt.Errorf("%w: userData is empty", domain.ErrInvalidInput)
	}
	return a.generate(ctx, domain.AdviceTax, string(payload))
}

// PlanRetirement returns a markdown retirement plan
func (a *Advisor) PlanRetirement(ctx context.Context, req domain.RetirementRequest) (string, error) {
	return a.advise(ctx, domain.AdviceRetirement, retirementInput(req))
}

// CalculateInsurance returns a markdown insurance cover recommendation
func (a *Advisor) CalculateInsurance(ctx context.Context, req domain.InsuranceRequest) (string, error) {
	return a.advise(ctx, domain.AdviceInsurance, insuranceInput(req))
}

// RecommendInvestments returns a markdown asset allocation. Risk tolerance
// defaults to moderate.
func (a *Advisor) RecommendInvestments(ctx context.Context, req domain.InvestmentRequest) (string, error) {
	if strings.TrimSpace(req.Risk) == "" {
		req.Risk = "moderate"
	}
	return a.advise(ctx, domain.AdviceInvestment, investmentInput(req))
}

// AnalyzeLoan returns a markdown loan analysis
func (a *Advisor) AnalyzeLoan(ctx context.Context, req domain.LoanRequest) (string, error) {
	return a.advise(ctx, domain.AdviceLoan, loanInput(req))
}

func (a *Advisor) advise(ctx context.Context, kind domain.AdviceKind, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("%w: form is empty", domain.ErrInvalidInput)
	}
	return a.generate(ctx, kind, input)
}

// generate consults the cache, then the generator. Cache failures are
// logged and otherwise ignored.
func (a *Advisor) generate(ctx context.Context, kind domain.AdviceKind, input string) (string, error) {
	if a.gen == nil {
		return "", fmt.Errorf("%w: no generator configured", ErrGeneration)
	}

	if text, ok, err := a.cache.Get(ctx, kind, input); err != nil {
		a.logger.Warn("advice cache read failed", zap.String("kind", string(kind)), zap.Error(err))
	} else if ok {
		a.logger.Debug("advice cache hit", zap.String("kind", string(kind)))
		return text, nil
	}

	start := time.Now()
	text, err := a.gen.Generate(ctx, promptFor(kind), input)
	if err != nil {
		a.logger.Error("generation failed", zap.String("kind", string(kind)), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	a.logger.Info("advice generated",
		zap.String("kind", string(kind)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(text)),
	)

	if err := a.cache.Set(ctx, kind, input, text); err != nil {
		a.logger.Warn("advice cache write failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	return text, nil
}

// StripCodeFences removes markdown code fences a model may wrap JSON in
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
