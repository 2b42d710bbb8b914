// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/dataset"
)

func newSnapshotCommand(s *session) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Compile the dataset into a badger snapshot",
		Long: `Load the dataset from the configured source and write it to the
snapshot store, stamped with the source fingerprint. The server then
starts from the snapshot until the source changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = s.cfg.Dataset.SnapshotPath
			}

			src, err := dataset.NewSource(s.cfg.Dataset, nil)
			if err != nil {
				return err
			}
			fp, err := src.Fingerprint()
			if err != nil {
				return fmt.Errorf("fingerprint %s source: %w", src.Name(), err)
			}
			if fp == "" {
				return errors.New("source has no fingerprint; a snapshot of it would never be used")
			}

			ds, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return err
			}

			store, err := dataset.OpenSnapshotStore(path)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Save(cmd.Context(), fp, ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written: %d movies to %s\n", len(ds.Movies), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "snapshot directory (default: dataset.snapshot_path)")
	return cmd
}
