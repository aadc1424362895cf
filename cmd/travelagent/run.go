// Copyright (c) Microsoft. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
	"github.com/microsoft/ai-agents-sandbox/go/driver"
	"github.com/microsoft/ai-agents-sandbox/go/internal/config"
	"github.com/microsoft/ai-agents-sandbox/go/internal/telemetry"
	"github.com/microsoft/ai-agents-sandbox/go/metrics"
	"github.com/microsoft/ai-agents-sandbox/go/travel"
)

const metricsNamespace = "travelagent"

type runFlags struct {
	metricsAddr string
	transcript  string
	detailed    bool
}

func runCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run [inputs...]",
		Short: "Run the scripted conversation (or the given inputs) against the agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Inputs = args
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAgent(cmd.Context(), cmd.OutOrStdout(), cfg, logger, f)
		},
	}
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().StringVar(&f.transcript, "transcript", "", "write the conversation as JSON to this file")
	cmd.Flags().BoolVar(&f.detailed, "detailed-errors", false, "send full tool error text back to the model")
	return cmd
}

func runAgent(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, f *runFlags) error {
	client, err := newChatClient(cfg.Model, logger)
	if err != nil {
		return err
	}

	if cfg.Telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Warn("flush traces", "error", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(metricsNamespace, reg)
	if f.metricsAddr != "" {
		stop, err := serveMetrics(f.metricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	tools, err := travel.NewRegistry(travel.NewDestinationPicker(cfg.Destinations, travel.WithLogger(logger)))
	if err != nil {
		return err
	}

	agent := af.NewAgent(client,
		af.WithName(cfg.Agent.Name),
		af.WithInstructions(cfg.Agent.Instructions),
		af.WithRegistry(tools),
		af.WithDefaultOptions(cfg.Model.ChatOptions()),
		af.WithChatMiddleware(collector.ChatMiddleware()),
		af.WithFunctionMiddleware(
			af.LoggingMiddleware(logger),
			af.TracingMiddleware(nil),
			collector.FunctionMiddleware(),
		),
		af.WithInvocationConfig(af.InvocationConfig{IncludeDetailedErrors: f.detailed}),
	)

	d := driver.New(agent,
		driver.WithOutput(out),
		driver.WithLogger(logger),
		driver.WithObserver(collector),
	)

	_, runErr := d.Run(ctx, cfg.Inputs)

	if f.transcript != "" {
		if err := writeTranscript(f.transcript, d.Conversation()); err != nil {
			logger.Warn("write transcript", "path", f.transcript, "error", err)
		}
	}

	if runErr != nil {
		fmt.Fprintln(out, "Run failed.")
		return runErr
	}
	fmt.Fprintln(out, "Run completed successfully.")
	return nil
}

func writeTranscript(path string, conv *af.Conversation) error {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// serveMetrics exposes reg on addr until the returned stop func is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
