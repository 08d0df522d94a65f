package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/phanxgames/art"
	"github.com/phanxgames/art/internal/logging"
	"github.com/phanxgames/art/internal/scenefile"
	"github.com/phanxgames/art/tree"
	"github.com/phanxgames/art/vg"
)

func newRootCmd() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:           "artrender",
		Short:         "Render declarative vector scenes",
		Long:          `artrender loads a YAML scene description, mounts it on the vg backend and writes the result as PNG or SVG, or opens it in a window.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			art.SetLogger(logging.NewWriter(cmd.ErrOrStderr(), level))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	cmd.AddCommand(newRenderCmd(), newViewCmd())
	return cmd
}

// mount attaches the scene's elements to a fresh vg canvas, the size of the
// scene unless width or height override it.
func mount(s *scenefile.Scene, width, height int) (*art.Surface[[]tree.Element], *vg.Canvas, *vg.Backend, error) {
	if width <= 0 {
		width = s.Width
	}
	if height <= 0 {
		height = s.Height
	}
	be := vg.New(vg.WithClearColor(s.Background))
	surface := art.NewSurface[[]tree.Element](be, tree.New(art.NewHost(be)))
	if err := surface.Attach(width, height, s.Children); err != nil {
		return nil, nil, nil, errors.Join(err, be.Close())
	}
	return surface, surface.Canvas().(*vg.Canvas), be, nil
}
