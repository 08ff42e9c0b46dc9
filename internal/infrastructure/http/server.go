package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until ctx is cancelled, then drains in-flight
// requests with a graceful shutdown. It blocks and returns any fatal server
// error.
func Start(ctx context.Context, e *echo.Echo, port string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info().Str("port", port).Msg("http server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("shutting down http server")
	return e.Shutdown(shutdownCtx)
}
