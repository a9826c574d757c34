package timeline

import "strings"

// Matrix decorations removed from job names, applied in order.
var jobNameDecorations = []string{
	"build (",
	")",
	"ubuntu-22.04, ",
	"ubuntu-24.04, ",
	"macos-14, ",
	"macos-15, ",
	"windows-2022, ",
	"windows-2025, ",
}

// NormalizeJobName shortens a job name to the key used for display and for
// matching the same job across runs. Only the segment after the last "/"
// is kept and known matrix decorations are stripped; anything else passes
// through unchanged.
func NormalizeJobName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	short := strings.TrimSpace(name)
	for _, d := range jobNameDecorations {
		short = strings.ReplaceAll(short, d, "")
	}
	return short
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
