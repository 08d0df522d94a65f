package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/art"
	"github.com/phanxgames/art/internal/scenefile"
)

type renderOptions struct {
	out    string
	format string
	width  int
	height int
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Render a scene file to PNG or SVG",
		Long: `Render mounts the scene once and writes a single frame.
The format defaults to the output file's extension, or png when writing to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "-", "output file, - for stdout")
	f.StringVarP(&opts.format, "format", "f", "", "output format: png or svg")
	f.IntVar(&opts.width, "width", 0, "override the scene width")
	f.IntVar(&opts.height, "height", 0, "override the scene height")
	return cmd
}

func outputFormat(opts renderOptions) (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.out)), ".")
		if opts.out == "-" || format == "" {
			format = "png"
		}
	}
	switch format {
	case "png", "svg":
		return format, nil
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

func runRender(stdout io.Writer, path string, opts renderOptions) (err error) {
	format, err := outputFormat(opts)
	if err != nil {
		return err
	}
	scene, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	surface, canvas, be, err := mount(scene, opts.width, opts.height)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, surface.Detach(), be.Close())
	}()

	w := stdout
	if opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if format == "svg" {
		err = canvas.EncodeSVG(w)
	} else {
		err = canvas.EncodePNG(w)
	}
	if err != nil {
		return err
	}
	width, height := canvas.Size()
	art.Logger().Info("rendered scene", "scene", path, "out", opts.out, "format", format,
		"width", width, "height", height)
	return nil
}
