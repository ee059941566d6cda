package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk prefab directory. Files found there shadow the
// embedded copies so edits take effect without a rebuild.
var Dir = "prefabs"

// Load returns the named prefab, preferring the copy in Dir.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name, "")
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns the named tengo script, preferring the copy in Dir.
func LoadScript(name string) ([]byte, error) {
	clean := cleanPath(name, "scripts/")
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// DiskPath maps a prefab-relative name into Dir.
func DiskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}

// Rel converts a path reported by the watcher back to a prefab-relative
// name. It returns false for paths outside Dir.
func Rel(path string) (string, bool) {
	rel, err := filepath.Rel(Dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func cleanPath(path, sub string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	if sub == "" {
		return s
	}
	return sub + strings.TrimPrefix(s, sub)
}
