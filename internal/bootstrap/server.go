package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avetrov/facilityhub/api"
	"github.com/avetrov/facilityhub/config"
	"github.com/avetrov/facilityhub/internal/service/booking"
	"github.com/avetrov/facilityhub/internal/service/credit"
	"github.com/avetrov/facilityhub/internal/service/facilities"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, facilitySvc facilities.FacilityUseCase, creditSvc credit.CreditUseCase) error {
	router := gin.Default()

	api.NewBookingHandler(bookingSvc).Register(router.Group("/bookings"))
	api.NewFacilityHandler(facilitySvc).Register(router.Group("/facilities"))
	api.NewAccountHandler(creditSvc).Register(router.Group("/accounts"))

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
