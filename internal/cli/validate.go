// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newValidateCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configured dataset and check its shape",
		Long: `Load the configured dataset, check that the similarity matrix is
square and matches the catalog, and report its size. Exits non-zero
when the dataset is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			c, err := s.components(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d movies from %s source in %s\n",
				c.Engine.Size(), c.Source.Name(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
