// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package cli provides the reelmatch command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

// errReported marks an error whose message the command already printed.
var errReported = errors.New("reported")

// session carries state shared by every subcommand of one invocation.
type session struct {
	configPath string
	verbose    bool

	cfg *config.Config
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:   "reelmatch",
		Short: "Find movies similar to one you like",
		Long: `Reelmatch ranks a movie catalog by precomputed similarity.

Configuration is read the same way as the server: defaults, then
config.yaml (or --config), then environment variables.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(
		newTitlesCommand(s),
		newRecommendCommand(s),
		newValidateCommand(s),
		newSnapshotCommand(s),
	)
	return root
}

// Execute runs the CLI against os.Args and prints any error to stderr.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func (s *session) init(stderr io.Writer) error {
	var err error
	if s.configPath != "" {
		s.cfg, err = config.LoadFile(s.configPath)
	} else {
		s.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := "warn"
	if s.verbose {
		level = "debug"
	}
	logging.Init(logging.Config{
		Level:     level,
		Format:    "console",
		Timestamp: true,
		Output:    stderr,
	})
	return nil
}

// components builds the stack and loads the dataset. The caller closes it.
func (s *session) components(ctx context.Context) (*app.Components, error) {
	c, err := app.Build(s.cfg, logging.Logger())
	if err != nil {
		return nil, err
	}
	if err := c.LoadDataset(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
