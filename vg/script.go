package vg

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phanxgames/art"
)

// ScriptStep is one action of a Script.
type ScriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// Script sequences synthetic pointer input and screenshots across frames.
// Attach it through RunConfig.Script, or call Step once per frame.
type Script struct {
	// Dir receives screenshots. Empty means the working directory.
	Dir string

	steps  []ScriptStep
	cursor int
	wait   int
	shots  int
	done   bool
}

// LoadScript parses a JSON script of the form {"steps": [...]}. Supported
// actions are click, drag, move, wait and screenshot.
func LoadScript(data []byte) (*Script, error) {
	var doc struct {
		Steps []ScriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("vg: parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, errors.New("vg: parse script: no steps")
	}
	for i, st := range doc.Steps {
		switch st.Action {
		case "click", "drag", "move", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("vg: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// Done reports whether every step has run and its input has drained.
func (s *Script) Done() bool { return s.done }

// Screenshots returns how many screenshots were written.
func (s *Script) Screenshots() int { return s.shots }

// Step advances the script by one frame. It waits for queued input to drain
// before starting the next step.
func (s *Script) Step(c *Canvas) error {
	if s.done || c.PendingInput() > 0 {
		return nil
	}
	if s.wait > 0 {
		s.wait--
		return nil
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return nil
	}
	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "click":
		c.InjectClick(st.X, st.Y)
	case "move":
		c.InjectMove(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			s.wait = st.Frames - 1
		}
	case "screenshot":
		if err := s.screenshot(c, st.Label); err != nil {
			return err
		}
	}
	if s.cursor >= len(s.steps) && s.wait == 0 && c.PendingInput() == 0 {
		s.done = true
	}
	return nil
}

func (s *Script) screenshot(c *Canvas, label string) error {
	if err := c.Render(); err != nil {
		return err
	}
	s.shots++
	path := filepath.Join(s.Dir, fmt.Sprintf("%02d_%s.png", s.shots, sanitizeLabel(label)))
	if err := c.SavePNG(path); err != nil {
		return err
	}
	art.Logger().Info("vg: screenshot", "path", path)
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
