package sketch5

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sauerbraten/jsonfile"
)

// LoadJSON decodes the JSON file at path into v. Lines starting with // are
// comments and must end with a newline.
func LoadJSON(path string, v any) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("sketch5: load json %s: %w", path, err)
	}
	if err := jsonfile.ParseFile(path, v); err != nil {
		return fmt.Errorf("sketch5: parse json %s: %w", path, err)
	}
	Logger().Debug("json loaded", "path", path)
	return nil
}

// ParseJSON decodes serialized JSON into v.
func ParseJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("sketch5: parse json: %w", err)
	}
	return nil
}

// SaveJSON writes v to path as indented JSON, creating parent directories.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("sketch5: encode json %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sketch5: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("sketch5: write json %s: %w", path, err)
	}
	Logger().Debug("json saved", "path", path, "bytes", len(data)+1)
	return nil
}

func (s *Sketch) loadJSON(path string) (any, error) {
	var v any
	if err := LoadJSON(path, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Sketch) parseJSON(data string) (any, error) {
	var v any
	if err := ParseJSON([]byte(data), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Sketch) saveJSON(v any, path string) error {
	return SaveJSON(s.savePath(path), v)
}
