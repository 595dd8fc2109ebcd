// zide-mock — in-memory сервер REST API расширения Zephyr IDE для
// локальной разработки и ручной проверки zide.
//
// Переменные окружения:
//
//	MOCK_PORT        порт (по умолчанию 8080)
//	MOCK_API_KEY     требуемый X-API-Key (пусто — без аутентификации)
//	MOCK_STATE_FILE  TOML файл с начальным состоянием
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/zide/internal/mockide"
	"github.com/shaiso/zide/internal/telemetry"
)

var (
	startTime = time.Now()
	reqTotal  = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zide_mock_healthz_requests_total",
		Help: "Total health check requests handled by zide-mock",
	})
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger(os.Stdout)
	logger.Info("starting zide-mock")

	state := mockide.DefaultState()
	if path := os.Getenv("MOCK_STATE_FILE"); path != "" {
		loaded, err := mockide.LoadState(path)
		if err != nil {
			logger.Error("failed to load state", "error", err)
			os.Exit(1)
		}
		state = loaded
		logger.Info("state loaded", "file", path, "projects", len(state.Projects))
	}

	handler := mockide.NewHandler(mockide.Config{
		State:  state,
		APIKey: os.Getenv("MOCK_API_KEY"),
		Logger: logger,
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		reqTotal.Inc()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Регистрируем API маршруты
	handler.RegisterRoutes(mux)

	addr := ":8080"
	if v := os.Getenv("MOCK_PORT"); v != "" {
		addr = ":" + v
	}

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Запускаем сервер в горутине
	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
