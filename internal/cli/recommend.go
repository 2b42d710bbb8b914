// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// MovieNotFoundMessage is printed when a title does not resolve.
const MovieNotFoundMessage = "Movie not found in dataset!"

func newRecommendCommand(s *session) *cobra.Command {
	var (
		count   int
		posters bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Show movies similar to a title",
		Long: `Show movies similar to a title as a grid of cards, three per row.

The title is matched case-insensitively. Posters are looked up on TMDB
when --posters is set and TMDB is configured.

Examples:
  reelmatch recommend "The Dark Knight"
  reelmatch recommend avatar -n 6 --posters`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")

			c, err := s.components(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			resp, err := c.Engine.Recommend(cmd.Context(), recommend.Request{
				Title:          title,
				K:              count,
				IncludePosters: posters,
			})
			if errors.Is(err, similarity.ErrNotFound) {
				fmt.Fprintln(cmd.ErrOrStderr(), MovieNotFoundMessage)
				return errReported
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRecommendations(cmd.OutOrStdout(), resp))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", similarity.DefaultTopN, "number of recommendations")
	cmd.Flags().BoolVar(&posters, "posters", false, "look up poster URLs on TMDB")
	return cmd
}
