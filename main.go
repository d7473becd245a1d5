package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/bill-dispute-analyzer/client"
	"github.com/Aashish23092/bill-dispute-analyzer/common"
	"github.com/Aashish23092/bill-dispute-analyzer/config"
	"github.com/Aashish23092/bill-dispute-analyzer/handler"
	"github.com/Aashish23092/bill-dispute-analyzer/service"
	"github.com/Aashish23092/bill-dispute-analyzer/storage"
)

func main() {
	cfg := config.LoadConfig()

	if err := common.SetupLogger(common.ParseLevel(cfg.LogLevel), cfg.LogFormat); err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Extraction
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	documentService := service.NewDocumentService(tesseractClient, client.NewQRClient(), service.NewPDFProcessor())

	// Analysis
	analysisService := service.NewAnalysisService(store)
	exportService := service.NewExportService(slog.Default())

	router := handler.SetupRouter(
		handler.NewAnalysisHandler(analysisService, documentService, exportService, cfg.MaxFileSize),
		handler.NewStatementHandler(exportService, cfg.MaxFileSize),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting Bill Dispute Analyzer", "port", cfg.ServerPort, "database", cfg.DatabasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
