package main

import (
	"io"

	"github.com/cwbudde/algo-biquad/internal/config"
	"github.com/cwbudde/algo-biquad/internal/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by all subcommands.
type options struct {
	configPath string
	sampleRate float64
	blockSize  int
	logLevel   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "biquadfilter",
		Short:         "Stream audio through a cascade of biquad sections",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "",
		"YAML cascade description. Without it the cascade is the identity.")
	flags.Float64VarP(&opts.sampleRate, "sample-rate", "s", config.DefaultSampleRate,
		"Sample rate in Hz for response analysis")
	flags.IntVarP(&opts.blockSize, "block-size", "b", config.DefaultBlockSize,
		"Frames per processing chunk")
	flags.StringVarP(&opts.logLevel, "log-level", "l", config.DefaultLogLevel,
		"Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newFilterCmd(opts),
		newResponseCmd(opts),
		newKernelCmd(),
	)

	return rootCmd
}

// load reads the config file and applies any flags set explicitly on the
// command line over it.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("sample-rate") {
		cfg.SampleRate = o.sampleRate
	}
	if flags.Changed("block-size") {
		cfg.BlockSize = o.blockSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, level string) *logrus.Logger {
	logger, err := log.New(cmd.ErrOrStderr(), level)
	if err != nil {
		logger.WithError(err).Warn("unknown log level, using info")
	}
	return logger
}
