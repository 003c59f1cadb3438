package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/frame"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/stream"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	v, err := settings(cmd, map[string]interface{}{
		"fps":  cfg.FPS,
		"addr": ":8080",
	})
	if err != nil {
		return err
	}

	sys, err := cfg.Build(logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}
	collector.Track(sys)

	hub, err := stream.NewHub(sys, stream.WithObserver(collector), stream.WithLogger(logger))
	if err != nil {
		return err
	}
	defer hub.Close()

	loop, err := frame.New(sys, v.GetFloat64("fps"), logger, hub)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              v.GetString("addr"),
		Handler:           hub.Routes(metrics.Handler(reg)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	errc := make(chan error, 2)
	go func() {
		level.Info(logger).Log("msg", "listening", "addr", srv.Addr, "system", cfg.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()
	go func() {
		errc <- loop.Run(ctx)
	}()

	// first exit wins; the other side is then shut down
	err = <-errc
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		level.Warn(logger).Log("msg", "shutdown", "err", serr)
	}
	<-errc

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	level.Info(logger).Log("msg", "stopped", "frames", loop.Frames())
	return nil
}
