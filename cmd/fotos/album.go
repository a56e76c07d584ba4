package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fotos/internal/album"
	"fotos/internal/config"
	"fotos/internal/export"
)

func newAlbumCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "album",
		Short: "Manage albums and export them",
	}

	cmd.AddCommand(
		newAlbumCreateCmd(cfg, jsonOutput),
		newAlbumListCmd(cfg, jsonOutput),
		newAlbumShowCmd(cfg, jsonOutput),
		newAlbumUpdateCmd(cfg, jsonOutput),
		newAlbumAddCmd(cfg, jsonOutput),
		newAlbumImportCmd(cfg, jsonOutput),
		newAlbumExportCmd(cfg, jsonOutput),
	)

	return cmd
}

func newAlbumCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var title, description, coverPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new album",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, err := readSource(coverPath)
			if err != nil {
				return err
			}

			return withApp(cfg, func(a *app) error {
				alb, err := a.albums.CreateAlbum(cmd.Context(), title, description, cover)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(alb)
				}
				return writeAlbumDetail(alb)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "album title")
	cmd.Flags().StringVar(&description, "description", "", "album description")
	cmd.Flags().StringVar(&coverPath, "cover", "", "image file to ingest as the album cover")

	return cmd
}

func newAlbumListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all albums, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app) error {
				albums, err := a.albums.ListAlbums(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(albums)
				}
				return writeAlbumList(albums)
			})
		},
	}
}

func newAlbumShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one album record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app) error {
				alb, err := a.albums.GetAlbum(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(alb)
				}
				return writeAlbumDetail(alb)
			})
		},
	}
}

func newAlbumUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var title, description, coverPath string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an album's title, description or cover",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := album.AlbumPatch{}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			cover, err := readSource(coverPath)
			if err != nil {
				return err
			}
			patch.Cover = cover

			return withApp(cfg, func(a *app) error {
				alb, err := a.albums.UpdateAlbumMeta(cmd.Context(), args[0], patch)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(alb)
				}
				return writeAlbumDetail(alb)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&coverPath, "cover", "", "image file to ingest as the new cover")

	return cmd
}

func newAlbumAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	geom := &geometryFlags{}

	cmd := &cobra.Command{
		Use:   "add <album-id> <file>",
		Short: "Ingest a photo and append it to an album",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry, err := geom.parse()
			if err != nil {
				return err
			}
			src, err := readSource(args[1])
			if err != nil {
				return err
			}

			return withApp(cfg, func(a *app) error {
				photo, err := a.albums.AppendPhotoToAlbum(cmd.Context(), args[0], *src, geometry)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(photo)
				}
				return writePlain("%s\n", photo.ID)
			})
		},
	}

	bindGeometryFlags(cmd, geom)

	return cmd
}

func newAlbumImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import <directory>",
		Short: "Create an album from a directory of image files",
		Long: `Create an album from a directory of image files.

An optional album.yaml in the directory supplies title, description and the
cover file; otherwise the directory name becomes the album title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app) error {
				alb, err := a.albums.ImportDirectory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(alb)
				}
				return writeAlbumDetail(alb)
			})
		},
	}
}

func newAlbumExportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var outDir string
	var forceZip bool

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export an album as a browsable bundle",
		Long: `Export an album as a self-contained bundle: images, a static index.html
viewer, and an album.json manifest.

The bundle is written as a plain folder when the destination allows it,
and as a zip archive otherwise. --zip forces the archive backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app) error {
				ctx := cmd.Context()
				alb, err := a.albums.GetAlbum(ctx, args[0])
				if err != nil {
					return err
				}

				w := export.NewWriter(outDir, export.BundleName(alb), forceZip)
				dest, err := a.packager.ExportAlbum(ctx, alb.ID, w)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]string{"album": alb.ID, "dest": dest})
				}
				return writePlain("exported to %s\n", dest)
			})
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "destination directory for the bundle")
	cmd.Flags().BoolVar(&forceZip, "zip", false, "always write a zip archive")

	return cmd
}

// readSource loads a file into an ingestion source, or returns nil for an
// empty path.
func readSource(path string) (*album.Source, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &album.Source{Name: filepath.Base(path), Data: data}, nil
}
