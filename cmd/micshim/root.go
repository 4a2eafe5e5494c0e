// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ik5/micshim/config"
	"github.com/ik5/micshim/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries state shared by the subcommands.
type app struct {
	v          *viper.Viper
	configFile string
	envFiles   []string

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:           "micshim",
		Short:         "Substitute microphone capture with a looping audio file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "env files to load instead of ./.env")
	flags.String("source", "", "audio file URI (env: MICSHIM_SOURCE)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error or none")
	flags.String("log-file", "", "write JSON logs to this file instead of stderr")

	mustBind(a.v, "source", flags.Lookup("source"))
	mustBind(a.v, "log.level", flags.Lookup("log-level"))
	mustBind(a.v, "log.file", flags.Lookup("log-file"))

	cmd.AddCommand(newRecordCmd(a))
	cmd.AddCommand(newProbeCmd(a))

	return cmd
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.configFile, a.envFiles...)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Configure(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.logCloser = closer
	return nil
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}
