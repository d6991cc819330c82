// Package assets resolves optional player portrait files. The portrait
// directory layout is <dir>/<season>/<file>.png; absence is tolerated.
package assets

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PortraitPath resolves a player's portrait for a season. ok is false when
// the filename is empty, not a .png, or the file does not exist on disk.
func PortraitPath(dir string, season int, filename string) (string, bool) {
	if filename == "" || !strings.HasSuffix(strings.ToLower(filename), ".png") {
		return "", false
	}
	path := filepath.Join(dir, strconv.Itoa(season), filename)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
