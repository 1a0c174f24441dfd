package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/codec"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve diagnoses over gRPC with Prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		metricsAddr := cfg.Server.MetricsAddr
		if cmd.Flags().Changed("metrics-addr") {
			metricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		}
		adaptive, _ := cmd.Flags().GetBool("adaptive")

		engine, err := newEngine()
		if err != nil {
			return err
		}
		collectors := metrics.New(prometheus.DefaultRegisterer)
		opts := []codec.ServerOption{codec.WithLogger(log), codec.WithMetrics(collectors)}

		if adaptive {
			p, store, err := openPipeline()
			if err != nil {
				return err
			}
			model, v, err := p.Model(cmd.Context())
			store.Close()
			if err != nil {
				return err
			}
			opts = append(opts, codec.WithModel(model))
			log.Info("serving adaptive scores", zap.String("version", v.VersionID))
		}

		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		srv := grpc.NewServer()
		codec.RegisterDiagnoserServer(srv, codec.NewServer(engine, opts...))

		var metricsSrv *http.Server
		if metricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			metricsSrv = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", zap.Error(err))
				}
			}()
			log.Info("metrics listening", zap.String("addr", metricsAddr))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			log.Info("shutting down")
			srv.GracefulStop()
			if metricsSrv != nil {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = metricsSrv.Shutdown(sctx)
			}
		}()

		log.Info("diagnoser listening", zap.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "localhost:50051", "gRPC listen address")
	serveCmd.Flags().String("metrics-addr", "localhost:9090", "Prometheus metrics listen address (empty disables)")
	serveCmd.Flags().Bool("adaptive", false, "Include adaptive scores from the active ledger weights")
}
