package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
)

// Server is the advisory HTTP service
type Server struct {
	cfg     *config.ServerConfig
	advisor *advisor.Advisor
	engine  *calculation.CalculationEngine
	logger  *zap.Logger
	router  *gin.Engine
}

// New builds the server and its routes. A nil config uses
// config.DefaultServerConfig; a nil advisor answers every generation request
// with an error; a nil engine uses the built-in rules.
func New(cfg *config.ServerConfig, adv *advisor.Advisor, engine *calculation.CalculationEngine, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultServerConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if adv == nil {
		adv = advisor.NewAdvisor(nil, nil, logger)
	}
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}

	s := &Server{cfg: cfg, advisor: adv, engine: engine, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog(s.logger))
	router.Use(CORS(s.cfg.AllowedOrigins))

	router.GET("/", s.handleAlive)
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/extract", s.handleExtract)
		api.POST("/recommend", s.handleRecommend)
		api.POST("/plan-retirement", s.handlePlanRetirement)
		api.POST("/calculate-insurance", s.handleCalculateInsurance)
		api.POST("/recommend-investments", s.handleRecommendInvestments)
		api.POST("/analyze-loan", s.handleAnalyzeLoan)
		api.POST("/tax/calculate", s.handleCalculate)
		api.POST("/tax/breakeven", s.handleBreakeven)
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server exited")
	return nil
}
