package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadTheme decodes a TOML theme on top of the default theme, so a file only
// needs to name the values it overrides. Unknown keys are an error.
func LoadTheme(r io.Reader) (Theme, error) {
	theme := NewDefaultTheme()
	if r == nil {
		return theme, errors.New("no theme to read")
	}

	md, err := toml.NewDecoder(r).Decode(&theme)
	if err != nil {
		return theme, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return theme, fmt.Errorf("unknown theme keys: %s", strings.Join(keys, ", "))
	}
	return theme, nil
}

// LoadThemeFile loads a theme from path and makes it the current theme. An
// empty path does nothing.
func LoadThemeFile(path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	theme, err := LoadTheme(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	CurrentTheme = theme
	return nil
}
