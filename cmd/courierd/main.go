package main

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"courier/internal/config"
	"courier/internal/crypto"
	"courier/internal/observability/metrics"
	"courier/internal/server"
	"courier/internal/store"
	"courier/internal/util/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logging.Init(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	metrics.MustRegister("courierd")

	identity, err := crypto.NewIdentity()
	if err != nil {
		logging.Fatal("generate server identity", zap.Error(err))
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		logging.Fatal("open store", zap.String("data_dir", cfg.DataDir), zap.Error(err))
	}

	if cfg.MetricsAddr != "" {
		go serveOps(cfg.MetricsAddr)
	}

	logging.Info("relay listening",
		zap.String("addr", cfg.Addr),
		zap.String("data_dir", cfg.DataDir),
		zap.String("server_public_key", hex.EncodeToString(identity.SigningPublic())),
	)
	srv := server.New(server.NewProcessor(identity, st))
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		logging.Fatal("serve", zap.Error(err))
	}
}

// serveOps runs the HTTP sidecar with health and metrics endpoints.
func serveOps(addr string) {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	logging.Info("ops listener up", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logging.Error("ops listener failed", zap.Error(err))
	}
}
