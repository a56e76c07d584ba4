package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fotos/internal/config"
)

func newPhotoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage individual photos",
	}

	cmd.AddCommand(
		newPhotoAddCmd(cfg, jsonOutput),
		newPhotoShowCmd(cfg, jsonOutput),
		newPhotoSetCmd(cfg, jsonOutput),
	)

	return cmd
}

func newPhotoAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var title, description string
	geom := &geometryFlags{}

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Ingest a photo and generate its size variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry, err := geom.parse()
			if err != nil {
				return err
			}
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			return withApp(cfg, func(a *app) error {
				ctx := cmd.Context()
				id, err := a.albums.IngestPhoto(ctx, *src, geometry)
				if err != nil {
					return err
				}
				if title != "" || description != "" {
					if _, err := a.albums.UpdatePhotoMeta(ctx, id, optional(title), optional(description)); err != nil {
						return err
					}
				}
				if *jsonOutput {
					photo, err := a.albums.GetPhoto(ctx, id)
					if err != nil {
						return err
					}
					return writeJSON(photo)
				}
				return writePlain("%s\n", id)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "photo title")
	cmd.Flags().StringVar(&description, "description", "", "photo description")
	bindGeometryFlags(cmd, geom)

	return cmd
}

func newPhotoShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one photo record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app) error {
				photo, err := a.albums.GetPhoto(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(photo)
				}
				return writePhotoDetail(photo)
			})
		},
	}
}

func newPhotoSetCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Edit a photo's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var titlePtr, descPtr *string
			if cmd.Flags().Changed("title") {
				titlePtr = &title
			}
			if cmd.Flags().Changed("description") {
				descPtr = &description
			}
			if titlePtr == nil && descPtr == nil {
				return fmt.Errorf("nothing to update; pass --title or --description")
			}

			return withApp(cfg, func(a *app) error {
				photo, err := a.albums.UpdatePhotoMeta(cmd.Context(), args[0], titlePtr, descPtr)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(photo)
				}
				return writePhotoDetail(photo)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func bindGeometryFlags(cmd *cobra.Command, geom *geometryFlags) {
	cmd.Flags().StringVar(&geom.crop, "crop", "", "crop rectangle as x,y,width,height in source coordinates")
	cmd.Flags().Float64Var(&geom.rotate, "rotate", 0, "rotation in degrees about the source image center")
	cmd.Flags().Float64Var(&geom.scaleX, "scale-x", 0, "horizontal scale about the source image center")
	cmd.Flags().Float64Var(&geom.scaleY, "scale-y", 0, "vertical scale about the source image center")
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
