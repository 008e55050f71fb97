package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/etnz/returns"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type serveCmd struct {
	cfg  Config
	log  zerolog.Logger
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the return computations over HTTP" }
func (*serveCmd) Usage() string {
	return `rtn serve [-addr <address>]

  Starts an HTTP server exposing the XIRR and TWR computations as a JSON API.
  See 'rtn topic serve'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", c.cfg.Addr, "Address to listen on.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch c.cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(c.cfg.GinMode)
	default:
		c.log.Error().Str("mode", c.cfg.GinMode).Msgf("invalid %s", EnvGinMode)
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              c.addr,
		Handler:           NewHandler(c.log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.log.Info().Str("addr", c.addr).Msg("server started")

	select {
	case err := <-errc:
		c.log.Error().Err(err).Msg("server failed")
		return subcommands.ExitFailure
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		c.log.Error().Err(err).Msg("server shutdown")
		return subcommands.ExitFailure
	}
	c.log.Info().Msg("server stopped")
	return subcommands.ExitSuccess
}

// NewHandler returns the HTTP API, with CORS enabled for any origin.
func NewHandler(log zerolog.Logger) http.Handler {
	return cors.Default().Handler(NewRouter(log))
}

// NewRouter returns the gin engine serving the API.
func NewRouter(log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(log), recovery(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := r.Group("/api/v1")
	{
		api.POST("/xirr", xirrHandler(log))
		api.POST("/twr", twrHandler(log))
	}
	return r
}

// XIRRRequest is the body of POST /api/v1/xirr.
type XIRRRequest struct {
	Flows []returns.CashFlow `json:"flows"`
}

// XIRRResponse is the answer of POST /api/v1/xirr. Rate is nil when there is no result.
type XIRRResponse struct {
	Rate   *float64 `json:"rate"`
	Reason string   `json:"reason,omitempty"`
}

// TWRRequest is the body of POST /api/v1/twr.
type TWRRequest struct {
	Valuations []returns.Valuation `json:"valuations"`
	Flows      []returns.CashFlow  `json:"flows"`
}

// TWRResponse is the answer of POST /api/v1/twr. Percent is nil when there is no result.
type TWRResponse struct {
	Percent *float64 `json:"percent"`
	Reason  string   `json:"reason,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()}})
}

// checkDates rejects flows and valuations without a date.
func checkDates(flows []returns.CashFlow, valuations []returns.Valuation) error {
	for i, f := range flows {
		if f.On.IsZero() {
			return fmt.Errorf("flows[%d]: missing date", i)
		}
	}
	for i, v := range valuations {
		if v.On.IsZero() {
			return fmt.Errorf("valuations[%d]: missing date", i)
		}
	}
	return nil
}

func xirrHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req XIRRRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := checkDates(req.Flows, nil); err != nil {
			badRequest(c, err)
			return
		}
		rate, err := returns.XIRR(req.Flows)
		if err != nil {
			log.Debug().Err(err).Int("flows", len(req.Flows)).Msg("xirr: no result")
			c.JSON(http.StatusOK, XIRRResponse{Reason: err.Error()})
			return
		}
		c.JSON(http.StatusOK, XIRRResponse{Rate: &rate})
	}
}

func twrHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TWRRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := checkDates(req.Flows, req.Valuations); err != nil {
			badRequest(c, err)
			return
		}
		chronological := slices.IsSortedFunc(req.Valuations, func(a, b returns.Valuation) int {
			return a.On.Compare(b.On)
		})
		if !chronological {
			badRequest(c, errors.New("valuations must be in chronological order"))
			return
		}
		twr, err := returns.LinkedTWR(req.Valuations, req.Flows)
		if err != nil {
			log.Debug().Err(err).Int("valuations", len(req.Valuations)).Msg("twr: no result")
			c.JSON(http.StatusOK, TWRResponse{Reason: err.Error()})
			return
		}
		p := float64(twr)
		c.JSON(http.StatusOK, TWRResponse{Percent: &p})
	}
}

// requestLogger logs every request once completed.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// recovery answers 500 on panic.
func recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"},
		})
	})
}
