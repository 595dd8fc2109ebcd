// zide — инструмент командной строки для REST API расширения Zephyr IDE.
//
// Использование:
//
//	zide [--api-url URL] [--api-key KEY] [--json] <command> [flags]
//
// Команды:
//
//	status     Состояние расширения
//	projects   Проекты и build-конфигурации
//	workspace  Конфигурация workspace
//	build      Запуск сборки
//	flash      Запуск прошивки
//	request    Произвольный GET/POST запрос
//	demo       Пошаговый пример работы с API
//	watch      Опрос статуса по расписанию
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shaiso/zide/internal/cli"
	"github.com/shaiso/zide/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	logger := telemetry.SetupLogger(os.Stderr)

	var flags cli.Settings
	var settings cli.Settings
	var configPath string
	var jsonOutput bool
	var metricsFile string

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewClientMetrics(registry)

	rootCmd := &cobra.Command{
		Use:           "zide",
		Short:         "zide — Zephyr IDE REST API client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = cli.ResolveSettings(flags, configPath, os.LookupEnv)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.BaseURL, "api-url", "", "API server URL (default "+cli.DefaultBaseURL+", env "+cli.EnvAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&flags.APIKey, "api-key", "", "API key sent as X-API-Key (env "+cli.EnvAPIKey+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (default "+cli.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-textfile", "", "Write client metrics in Prometheus text format to this file on exit")

	clientFn := func(opts ...cli.Option) *cli.Client {
		base := []cli.Option{cli.WithMetrics(metrics), cli.WithLogger(logger)}
		if settings.APIKey != "" {
			base = append(base, cli.WithAPIKey(settings.APIKey))
		}
		return cli.NewClient(settings.BaseURL, append(base, opts...)...)
	}
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewStatusCmd(clientFn, outputFn),
		cli.NewProjectsCmd(clientFn, outputFn),
		cli.NewWorkspaceCmd(clientFn, outputFn),
		cli.NewBuildCmd(clientFn, outputFn),
		cli.NewFlashCmd(clientFn, outputFn),
		cli.NewRequestCmd(clientFn, outputFn),
		cli.NewDemoCmd(clientFn, outputFn),
		cli.NewWatchCmd(clientFn, outputFn),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(telemetry.WithLogger(ctx, logger))
	cancel()

	if metricsFile != "" {
		if werr := prometheus.WriteToTextfile(metricsFile, registry); werr != nil {
			logger.Error("failed to write metrics", "file", metricsFile, "error", werr)
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
