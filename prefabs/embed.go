package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml *.toml
var PrefabsFS embed.FS

// Dir is the on-disk directory whose files override the embedded defaults.
var Dir = "prefabs"

// Load returns a prefab file. A copy under Dir wins over a path given as-is,
// which wins over the embedded default.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports when the on-disk override of name last changed.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
