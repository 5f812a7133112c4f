package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/physai/bookrag/internal/adapter/utils"
	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/handlers"
	"github.com/physai/bookrag/internal/middleware"
	"github.com/physai/bookrag/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string, h *handlers.Handler) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Post("/chat", middleware.Wrap(h.Chat))
	r.Router.Post("/chat/grounded", middleware.Wrap(h.GroundedChat))
	r.Router.Post("/index", middleware.Wrap(h.Index))
	r.Router.Get("/index/status", middleware.Wrap(h.IndexStatus))
	r.Router.Get("/index/status/{id}", middleware.Wrap(h.IndexStatusById))
	r.Router.Get("/health", middleware.Wrap(h.Health))
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
