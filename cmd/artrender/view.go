package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/art"
	"github.com/phanxgames/art/internal/scenefile"
	"github.com/phanxgames/art/tree"
	"github.com/phanxgames/art/vg"
)

type viewOptions struct {
	resizable bool
	fps       bool
	watch     bool
	script    string
	shots     string
}

func newViewCmd() *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view <scene.yaml>",
		Short: "Open a scene file in a window",
		Long: `View mounts the scene in a window. With --watch the file is reloaded
when it changes and the new tree is reconciled into the running scene.
With --script the window replays a JSON input script and closes when it ends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0], opts)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.resizable, "resizable", false, "allow resizing the window")
	f.BoolVar(&opts.fps, "fps", false, "show the frame rate")
	f.BoolVar(&opts.watch, "watch", false, "reload the scene file when it changes")
	f.StringVar(&opts.script, "script", "", "replay a JSON input script")
	f.StringVar(&opts.shots, "shots", ".", "directory for script screenshots")
	return cmd
}

// reloader re-reads a scene file when its modification time changes.
type reloader struct {
	path    string
	modTime time.Time
	checked time.Time
	every   time.Duration
}

func newReloader(path string) *reloader {
	r := &reloader{path: path, every: 500 * time.Millisecond}
	if fi, err := os.Stat(path); err == nil {
		r.modTime = fi.ModTime()
	}
	return r
}

// poll returns the reloaded scene, or nil when the file is unchanged or was
// checked too recently.
func (r *reloader) poll(now time.Time) (*scenefile.Scene, error) {
	if now.Sub(r.checked) < r.every {
		return nil, nil
	}
	r.checked = now
	fi, err := os.Stat(r.path)
	if err != nil {
		return nil, err
	}
	if !fi.ModTime().After(r.modTime) {
		return nil, nil
	}
	r.modTime = fi.ModTime()
	return scenefile.Load(r.path)
}

func loadScript(opts viewOptions) (*vg.Script, error) {
	if opts.script == "" {
		return nil, nil
	}
	data, err := os.ReadFile(opts.script)
	if err != nil {
		return nil, err
	}
	s, err := vg.LoadScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.script, err)
	}
	s.Dir = opts.shots
	return s, nil
}

func runView(path string, opts viewOptions) (err error) {
	script, err := loadScript(opts)
	if err != nil {
		return err
	}
	scene, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	surface, canvas, be, err := mount(scene, 0, 0)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, surface.Detach(), be.Close())
	}()

	children := scene.Children
	var watch *reloader
	if opts.watch {
		watch = newReloader(path)
	}
	return vg.Run(canvas, vg.RunConfig{
		Title:     "artrender: " + path,
		Resizable: opts.resizable,
		ShowFPS:   opts.fps,
		Script:    script,
		Update: func() error {
			if watch == nil {
				return nil
			}
			next, err := watch.poll(time.Now())
			if err != nil {
				// keep showing the last good scene
				art.Logger().Warn("reload failed", "scene", path, "err", err)
				return nil
			}
			if next == nil {
				return nil
			}
			children = next.Children
			w, h := surface.Size()
			art.Logger().Info("reloaded scene", "scene", path, "elements", tree.Count(children))
			return surface.Update(w, h, children)
		},
		Resize: func(w, h int) error {
			return surface.Update(w, h, children)
		},
	})
}
