package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var keymapLog = logger.New("config:keymap")

// KeymapOverride maps key patterns (e.g. "p a", "ctrl+r") to command names.
// Entries replace the default binding for the same pattern; binding a pattern
// to "" removes it.
type KeymapOverride map[string]string

// LoadKeymapOverride reads the optional keymap.yml. A missing file is an
// empty override; a malformed file is logged and ignored.
func LoadKeymapOverride() KeymapOverride {
	path, err := KeymapOverridePath()
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var override KeymapOverride
	if err := yaml.Unmarshal(data, &override); err != nil {
		keymapLog.Printf("Failed to parse keymap override %s: %v", path, err)
		return nil
	}
	keymapLog.Printf("Loaded %d keymap overrides from %s", len(override), path)
	return override
}
