package sketch5

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sauerbraten/jsonfile"
)

// Config holds the settings a sketch starts with. It is usually loaded from
// a JSON file; lines starting with // are comments and must end with a
// newline.
type Config struct {
	Title         string  `json:"title"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	FrameRate     int     `json:"frame_rate"`
	Colormap      string  `json:"colormap"`       // "" disables colormap coercion
	ColormapRange float64 `json:"colormap_range"` // scalar mapped to the top of the colormap
	RandomSeed    *uint64 `json:"random_seed"`    // nil seeds from entropy
	LogLevel      string  `json:"log_level"`
	SaveDir       string  `json:"save_dir"`
	ShowFPS       bool    `json:"show_fps"`
	Script        string  `json:"script"` // input script replayed from the first frame
}

// DefaultConfig returns the settings used for anything a config file omits.
func DefaultConfig() *Config {
	return &Config{
		Title:         "sketch5",
		Width:         640,
		Height:        480,
		FrameRate:     60,
		ColormapRange: 1,
		LogLevel:      "info",
		SaveDir:       ".",
	}
}

// LoadConfig reads the JSON file at path over DefaultConfig and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	// jsonfile does not report a missing file, so check first.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sketch5: config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := jsonfile.ParseFile(path, cfg); err != nil {
		return nil, fmt.Errorf("sketch5: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	Logger().Info("config loaded", "path", path, "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return cfg, nil
}

// Validate reports every invalid field, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("sketch5: config: "+format+": %w", append(args, ErrConfig)...))
	}
	if c.Width <= 0 || c.Height <= 0 {
		bad("size %dx%d must be positive", c.Width, c.Height)
	}
	if c.FrameRate <= 0 {
		bad("frame_rate %d must be positive", c.FrameRate)
	}
	if c.ColormapRange <= 0 {
		bad("colormap_range %v must be positive", c.ColormapRange)
	}
	if c.Colormap != "" {
		if _, err := LookupColormap(c.Colormap); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel ("debug", "info", "warn", "error", or offsets such
// as "warn+2").
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("sketch5: config: log_level %q: %w", c.LogLevel, ErrConfig)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w at LogLevel. An invalid level
// falls back to info.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// coercer builds the color coercer the config describes.
func (c *Config) coercer() (*ColorCoercer, error) {
	if c.Colormap == "" {
		return NewColorCoercer(), nil
	}
	cmap, err := LookupColormap(c.Colormap)
	if err != nil {
		return nil, err
	}
	return NewColorCoercer(WithColormap(cmap, c.ColormapRange)), nil
}

// random builds the random source the config describes.
// noise seeds the noise field from RandomSeed, or 0 when it is unset.
func (c *Config) noise() *Noise {
	var seed int64
	if c.RandomSeed != nil {
		seed = int64(*c.RandomSeed)
	}
	return NewNoise(seed)
}

func (c *Config) random() *Random {
	if c.RandomSeed != nil {
		return NewRandomSeed(*c.RandomSeed)
	}
	return NewRandom()
}
