package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/cinemabooking/api"
	"github.com/Domenick1991/cinemabooking/config"
	"github.com/Domenick1991/cinemabooking/internal/metrics"
	"github.com/Domenick1991/cinemabooking/internal/service/account"
	"github.com/Domenick1991/cinemabooking/internal/service/booking"
	"github.com/Domenick1991/cinemabooking/internal/service/screenings"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	accountSvc account.AccountUseCase,
	bookingSvc booking.BookingUseCase,
	screeningSvc screenings.ScreeningUseCase,
	gatherer prometheus.Gatherer,
) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(accountSvc, bookingSvc, screeningSvc, gatherer),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine with all routes.
func NewRouter(
	accountSvc account.AccountUseCase,
	bookingSvc booking.BookingUseCase,
	screeningSvc screenings.ScreeningUseCase,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api.NewAccountHandler(accountSvc).Register(router)
	api.NewBookingHandler(bookingSvc).Register(router)
	api.NewScreeningHandler(screeningSvc).Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}

	return router
}
