// Package instructions collects standing guidance for the report agent:
// a global file under ~/.reportchat plus per-directory briefs, merged
// into the system prompt.
package instructions

import (
	"os"
	"path/filepath"
	"strings"
)

// BriefFilename is the per-directory brief. Briefs found higher in the
// directory tree apply first so nearer ones can refine them.
const BriefFilename = "REPORTCHAT.md"

// GlobalFilename holds user-wide instructions.
const GlobalFilename = "instructions.md"

// Discover merges the global instructions file with every brief on the
// path from the filesystem root down to workdir. Missing files are
// skipped; the result is empty when nothing is found.
func Discover(workdir string) string {
	var parts []string

	home, _ := os.UserHomeDir()
	if home != "" {
		if data, err := os.ReadFile(filepath.Join(home, ".reportchat", GlobalFilename)); err == nil {
			parts = append(parts, string(data))
		}
	}

	dir := workdir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	dir = filepath.Clean(dir)

	var chain []string
	prev := ""
	for dir != prev && dir != string(filepath.Separator) {
		chain = append(chain, dir)
		prev = dir
		dir = filepath.Dir(dir)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if data, err := os.ReadFile(filepath.Join(chain[i], BriefFilename)); err == nil {
			parts = append(parts, string(data))
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
