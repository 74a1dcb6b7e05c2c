package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/handler"
	"tradejournal/src/parsers"
	"tradejournal/src/repository"
	"tradejournal/src/service"
	"tradejournal/src/sink"
	"tradejournal/src/stream"
)

func StartServer(port string) {
	tradeSink, err := sink.New()
	if err != nil {
		logger.WithError(err).Fatal("Failed to build trade sink")
	}

	hub := stream.NewHub()
	uploadService := service.NewUploadService(
		parsers.NewPerformanceCSVParser(),
		tradeSink,
		repository.NewImportBatchRepository(),
		hub,
	)

	// Router with middleware
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/imports", handler.UploadTradesHandler(uploadService))
		r.Get("/trades", handler.DefaultSearchTradesHandler())
		r.Delete("/trades", handler.DefaultDeleteTradesHandler())
		r.Patch("/trades/{id}", handler.DefaultUpdateTradeHandler())
		r.Get("/strategies", handler.DefaultListStrategiesHandler())
		r.Get("/setups", handler.DefaultListSetupsHandler())
		r.Get("/stats", handler.DefaultStatsHandler())
	})

	r.Get("/ws/imports", hub.ServeWS)

	// Graceful server
	// Server setup
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
