package sketch5

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sauerbraten/jsonfile"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Char   string  `json:"char,omitempty"`

	key  ebiten.Key
	char rune
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays scripted input and saves frames, for unattended runs and
// visual regression checks. Steps run one per frame, and a step waits until
// the input injected by the previous one has been consumed.
//
// Actions:
//
//	click  x, y                          press and release
//	drag   fromX, fromY, toX, toY, frames
//	move   x, y                          pointer move with no button held
//	key    key (a key name such as "A" or "Space"), optional char
//	wheel  dx, dy
//	wait   frames
//	save   label                         save the canvas as <label>.png under save_dir
//	exit                                 stop the sketch
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// ParseScript parses a JSON input script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sketch5: parse script: %w", err)
	}
	return newScript(f.Steps)
}

// LoadScript reads a JSON input script from path. Lines starting with //
// are comments.
func LoadScript(path string) (*Script, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sketch5: script %s: %w", path, err)
	}
	var f scriptFile
	if err := jsonfile.ParseFile(path, &f); err != nil {
		return nil, fmt.Errorf("sketch5: parse script %s: %w", path, err)
	}
	sc, err := newScript(f.Steps)
	if err != nil {
		return nil, err
	}
	Logger().Info("script loaded", "path", path, "steps", len(sc.steps))
	return sc, nil
}

func newScript(steps []scriptStep) (*Script, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("sketch5: parse script: no steps: %w", ErrConfig)
	}
	for i := range steps {
		st := &steps[i]
		switch st.Action {
		case "click", "drag", "move", "wheel", "wait", "save", "exit":
		case "key":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("sketch5: script step %d: key %q: %w", i, st.Key, ErrConfig)
			}
			if st.Char != "" {
				st.char = []rune(st.Char)[0]
			}
		default:
			return nil, fmt.Errorf("sketch5: script step %d: unknown action %q: %w", i, st.Action, ErrConfig)
		}
	}
	return &Script{steps: steps}, nil
}

// Done reports whether every step has run and its input has been consumed.
func (sc *Script) Done() bool { return sc.done }

// step advances the script by one frame. It runs before input is polled.
func (sc *Script) step(g *game) error {
	if sc.done {
		return nil
	}
	p := g.poller
	if p.Pending() > 0 {
		return nil
	}
	if sc.waitCount > 0 {
		sc.waitCount--
		return nil
	}
	if sc.cursor >= len(sc.steps) {
		sc.done = true
		return nil
	}

	st := sc.steps[sc.cursor]
	sc.cursor++

	switch st.Action {
	case "click":
		p.InjectClick(st.X, st.Y)
	case "drag":
		p.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "move":
		p.InjectHover(st.X, st.Y)
	case "key":
		p.InjectKey(st.key, st.char)
	case "wheel":
		p.InjectWheel(st.DX, st.DY)
	case "wait":
		if st.Frames > 0 {
			sc.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "save":
		path := sanitizeLabel(st.Label) + ".png"
		if err := g.s.save(path); err != nil {
			return err
		}
		Logger().Info("script saved frame", "path", path, "frame", g.s.frames)
	case "exit":
		sc.done = true
		return ErrExit
	}

	if sc.cursor >= len(sc.steps) && sc.waitCount == 0 && p.Pending() == 0 {
		sc.done = true
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
