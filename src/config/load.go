package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML style file. Keys missing from the file keep their DefaultStyle value;
// unknown keys are an error so typos do not silently fall back to defaults.
func Load(path string) (Style, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style %s: %w", path, err)
	}
	st, err := Parse(b)
	if err != nil {
		return Style{}, fmt.Errorf("style %s: %w", path, err)
	}
	return st, nil
}

// Parse decodes TOML style bytes on top of DefaultStyle and validates the result.
func Parse(b []byte) (Style, error) {
	st := DefaultStyle()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&st); err != nil {
		return Style{}, fmt.Errorf("decode: %w", err)
	}
	if err := st.Validate(); err != nil {
		return Style{}, err
	}
	return st, nil
}

// Write stores s as TOML at path (used to hand users an editable starting point).
func Write(path string, s Style) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode style: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write style %s: %w", path, err)
	}
	return nil
}
