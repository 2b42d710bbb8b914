// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTitlesCommand(s *session) *cobra.Command {
	var (
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles",
		Long: `List catalog titles in matrix order.

Examples:
  reelmatch titles
  reelmatch titles --search "dark" --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.components(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			movies, err := c.Engine.Search(search, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(movies) == 0 {
				fmt.Fprintln(out, "No titles found.")
				return nil
			}
			for _, m := range movies {
				fmt.Fprintf(out, "%10d  %s\n", m.ID, m.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive substring filter")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "max titles (0 = all)")
	return cmd
}
