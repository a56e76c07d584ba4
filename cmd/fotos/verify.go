package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"fotos/internal/config"
)

// verifyReport summarizes one integrity sweep over the blob store.
type verifyReport struct {
	Photos  int      `json:"photos"`
	Blobs   int      `json:"blobs"`
	Damaged []string `json:"damaged,omitempty"`
}

func newVerifyCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check every stored blob against its recorded digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app) error {
				ctx := cmd.Context()
				ids, err := a.store.ListPhotoIDs(ctx)
				if err != nil {
					return err
				}

				report := verifyReport{Photos: len(ids)}
				for _, id := range ids {
					photo, err := a.store.GetPhoto(ctx, id)
					if err != nil {
						return err
					}

					keys := []string{photo.OriginalBlobID}
					for _, v := range photo.Variants {
						keys = append(keys, v.BlobID)
					}
					for _, key := range keys {
						report.Blobs++
						if err := a.blobs.Verify(ctx, key); err != nil {
							slog.Warn("blob failed verification", "photo", id, "blob", key, "error", err)
							report.Damaged = append(report.Damaged, key)
						}
					}
				}

				if *jsonOutput {
					if err := writeJSON(report); err != nil {
						return err
					}
				} else {
					if err := writePlain("checked %d blobs across %d photos, %d damaged\n",
						report.Blobs, report.Photos, len(report.Damaged)); err != nil {
						return err
					}
					for _, key := range report.Damaged {
						if err := writePlain("  damaged: %s\n", key); err != nil {
							return err
						}
					}
				}

				if len(report.Damaged) > 0 {
					return fmt.Errorf("%d blob(s) failed verification", len(report.Damaged))
				}
				return nil
			})
		},
	}
}
