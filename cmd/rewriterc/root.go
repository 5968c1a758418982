// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/commands"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/status"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// defaultConfigFiles are looked up in the working directory when --config is not set
var defaultConfigFiles = []string{
	".rewriterc.yaml",
	".rewriterc.yml",
	".rewriterc.hcl",
	".rewriterc.json",
}

// 🌳 newRootCmd builds the command tree around a fresh RootOpts
func newRootCmd() (*cobra.Command, *opts.RootOpts) {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "rewriterc",
		Short: "Rewrite a source file with an ordered list of pattern rules",
		Long: `rewriterc reads a single text file, applies an ordered sequence of
literal, regex and insert-after rules to it, and writes the result back.

Rules come from a named preset, a config file (.rewriterc.yaml, .hcl or
.json), or both. With no arguments the shadcn-staff-form preset is applied
to its default target.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return newRootOpts(cmd, ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Run(cmd.Context(), ro)
		},
	}

	addRootFlags(cmd, ro)

	cmd.AddCommand(
		commands.NewRunCmd(ro),
		commands.NewCheckCmd(ro),
		commands.NewRulesCmd(ro),
		newVersionCmd(),
	)

	return cmd, ro
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", "", "config file path (default: .rewriterc.{yaml,yml,hcl,json} if present)")
	cmd.PersistentFlags().StringVarP(&ro.Target, "target", "t", "", "file to rewrite, overrides the config")
	cmd.PersistentFlags().StringVarP(&ro.Preset, "preset", "p", "", "preset to apply, overrides the config")
	cmd.PersistentFlags().BoolVar(&ro.Backup, "backup", false, "keep a .bak copy of the target before writing")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&ro.LogFile, "log-file", "", "also write JSON logs to this rotating file")
}

// newRootOpts fills ro with the resolved config and the shared dependencies
func newRootOpts(cmd *cobra.Command, ro *opts.RootOpts) error {
	logger, closer := setupLogging(cmd.ErrOrStderr(), ro.Debug, ro.LogFile)
	ro.LogCloser = closer

	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	ro.UserLogger = log.NewUserLogger(ctx, cmd.ErrOrStderr())

	cfg, err := loadConfig(ctx, ro)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	rules, err := cfg.ResolveRules()
	if err != nil {
		return errors.Errorf("resolving rules: %w", err)
	}

	ro.Config = cfg
	ro.Rules = rules
	ro.Files = status.New(".", &logger)
	cmd.SetContext(log.NewContext(ctx, log.New(cmd.OutOrStdout(), logger)))

	ro.UserLogger.LogStateChange(fmt.Sprintf("resolved %s (%d rules)", cfg, len(rules)))

	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig(ctx context.Context, ro *opts.RootOpts) (*config.Config, error) {
	path := ro.ConfigFile
	if path == "" {
		path = findDefaultConfig()
	}

	// the target is left empty so Validate takes it from the final preset
	cfg := &config.Config{Preset: config.Default().Preset}
	if path != "" {
		read, err := config.Read(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = read
	}

	if ro.Preset != "" {
		cfg.Preset = ro.Preset
	}
	if ro.Target != "" {
		cfg.Target = ro.Target
	}
	if ro.Backup {
		cfg.Backup = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func findDefaultConfig() string {
	for _, name := range defaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// setupLogging builds the zerolog logger. The console only shows warnings
// unless debug is set; the log file, when given, gets everything.
func setupLogging(stderr io.Writer, debug bool, logFile string) (zerolog.Logger, io.Closer) {
	level := zerolog.InfoLevel
	consoleLevel := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
		consoleLevel = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: console},
			Level:  consoleLevel,
		},
	}

	var closer io.Closer
	if logFile != "" {
		lj := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, lj)
		closer = lj
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return logger, closer
}
