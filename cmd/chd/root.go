package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/config"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/replay"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/state"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/training"
)

var (
	log = zap.NewNop()
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:          "chd",
	Short:        "Fuzzy-inference coronary heart disease risk engine",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		initLogger(verbose)

		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			c.Store.DBPath = p
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to TOML configuration file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite weight ledger (overrides CHD_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging and detailed output")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
}

// newEngine builds the engine the configuration selects.
func newEngine() (*inference.Engine, error) {
	fc := replay.FixtureConfig{Bank: cfg.Engine.Bank}
	centers := cfg.Engine.Centers()
	fc.Centers = &centers
	return fc.ToEngine()
}

func openPipeline() (*training.Pipeline, *state.Store, error) {
	store, err := state.NewStore(cfg.Store.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger %s: %w", cfg.Store.DBPath, err)
	}
	p := training.NewPipeline(store,
		training.WithLogger(log),
		training.WithCenters(cfg.Engine.Centers()))
	return p, store, nil
}
