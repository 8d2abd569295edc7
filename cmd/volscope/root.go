package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"VolScope/internal/analyzer"
	"VolScope/internal/calculator"
	"VolScope/internal/config"
	"VolScope/internal/loader"
	"VolScope/internal/recorder"
	"VolScope/internal/report"
	"VolScope/internal/scheduler"
)

// Execute runs the volscope command tree.
func Execute(ctx context.Context) error {
	var cfgPath string

	root := &cobra.Command{
		Use:   "volscope",
		Short: "Historical volatility analysis for daily OHLC series",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to YAML config")
	root.AddCommand(analyzeCmd(&cfgPath), watchCmd(ctx, &cfgPath))
	return root.ExecuteContext(ctx)
}

func analyzeCmd(cfgPath *string) *cobra.Command {
	var csvPath, symbol string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the analysis once and render all outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath, csvPath, symbol)
			if err != nil {
				return err
			}
			return runPipeline(cfg)
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "input OHLC CSV (overrides config)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol label (overrides config)")
	return cmd
}

func watchCmd(ctx context.Context, cfgPath *string) *cobra.Command {
	var csvPath, symbol string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the analysis on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath, csvPath, symbol)
			if err != nil {
				return err
			}

			sched := scheduler.New(func() error { return runPipeline(cfg) })
			if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			log.Info().Str("cron", cfg.Schedule.RefreshCron).Msg("watching for scheduled runs")
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "input OHLC CSV (overrides config)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol label (overrides config)")
	return cmd
}

func loadConfig(path, csvPath, symbol string) (*config.Config, error) {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if csvPath != "" {
		cfg.Input.CSVPath = csvPath
	}
	if symbol != "" {
		cfg.Input.Symbol = symbol
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func runPipeline(cfg *config.Config) error {
	src := loader.NewCSVSource(cfg.Input.CSVPath, cfg.Input.FromYear, cfg.Input.ToYear)
	bars, err := src.Load()
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	if len(bars) == 0 {
		return fmt.Errorf("no bars in %s for %d-%d", src.Name(), cfg.Input.FromYear, cfg.Input.ToYear)
	}
	log.Info().Str("source", src.Name()).Int("bars", len(bars)).
		Str("from", bars[0].Date.Format("2006-01-02")).
		Str("to", bars[len(bars)-1].Date.Format("2006-01-02")).
		Msg("series loaded")

	a := analyzer.New(analyzer.Config{
		PeriodsPerYear: cfg.Analysis.PeriodsPerYear,
		MinTradingDays: cfg.Analysis.MinTradingDays,
		ATRPeriod:      cfg.Analysis.ATRPeriod,
	})
	rep, err := a.Run(bars)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.Info().Int("years", len(rep.Years)).Msg("analysis complete")

	fmt.Print(report.FormatSummary(cfg.Input.Symbol, rep.Years, rep.Stats, report.DefaultStyle()))

	if cfg.Output.CSVPath != "" {
		if err := report.WriteSummaryCSV(cfg.Output.CSVPath, rep.Years); err != nil {
			return fmt.Errorf("write summary csv: %w", err)
		}
		log.Info().Str("path", cfg.Output.CSVPath).Msg("summary csv written")
	}

	if cfg.Output.ChartPath != "" {
		rolling := calculator.RollingVolatility(rep.Returns, cfg.Analysis.RollingWindow, cfg.Analysis.PeriodsPerYear)
		for i := range rolling {
			if rolling[i].Valid {
				rolling[i].Value *= 100
			}
		}
		if err := report.RenderDashboard(cfg.Output.ChartPath, cfg.Input.Symbol, rep.Bars, rep.Returns, rolling, rep.Years); err != nil {
			return fmt.Errorf("render dashboard: %w", err)
		}
		log.Info().Str("path", cfg.Output.ChartPath).Msg("chart dashboard written")
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Output.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, results not persisted")
		} else {
			rec = sr
		}
	}
	defer rec.Close()
	if err := rec.RecordRun(cfg.Input.Symbol, rep.Years); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
