package perf

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thepudds/robinhood/internal/perf"
)

var Cmd = NewCmd()

// NewCmd returns the perf command with its own flag state.
func NewCmd() *cobra.Command {
	var (
		config     = perf.NewConfig()
		configFile string
	)
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "Robin Hood map perf driver",
		Long: `Run a random mix of reads, writes and erases against a map and report
operation rates and probe sequence lengths`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, configFile, &config); err != nil {
				return err
			}
			return config.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, config)
		},
	}

	cmd.Flags().IntVar(&config.Keys, "keys", config.Keys, "Number of distinct keys")
	cmd.Flags().IntVar(&config.Ops, "ops", config.Ops, "Number of operations, 0 runs until interrupted")
	cmd.Flags().Float64VarP(&config.ReadPercent, "read-percent", "p", config.ReadPercent, "Percentage of reads")
	cmd.Flags().Float64Var(&config.ErasePercent, "erase-percent", config.ErasePercent, "Percentage of erases, the rest are writes")
	cmd.Flags().StringVar(&config.Hash, "hash", config.Hash, "Hash function: maphash, xxh3 or xxhash")
	cmd.Flags().Float64VarP(&config.Rate, "rate", "r", config.Rate, "Operation rate, ops/s, 0 for unlimited")
	cmd.Flags().IntVarP(&config.ValueSize, "value-size", "s", config.ValueSize, "Size of the values to write")
	cmd.Flags().BoolVar(&config.Verify, "verify", config.Verify, "Check every result against a reference map")
	cmd.Flags().DurationVar(&config.ReportInterval, "report-interval", config.ReportInterval, "Interval between stats reports, 0 disables")
	cmd.Flags().Uint64Var(&config.Seed, "seed", config.Seed, "Seed for the operation mix")
	cmd.Flags().StringVarP(&configFile, "conf", "f", "", "Perf config file")
	return cmd
}

// loadConfig overlays configFile, when given, on the defaults. Flags set
// on the command line take precedence over the file.
func loadConfig(cmd *cobra.Command, configFile string, config *perf.Config) error {
	if configFile == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configFile)
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", configFile)
	}

	if err := v.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return errors.Wrap(err, "failed to load perf config")
	}
	log.Debug().
		Str("file", configFile).
		Interface("config", config).
		Msg("Loaded perf config")
	return nil
}

func run(ctx context.Context, config perf.Config) error {
	_, err := perf.New(config).Run(ctx)
	return err
}
