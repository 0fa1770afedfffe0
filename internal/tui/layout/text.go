package layout

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	textLen := utf8.RuneCountInString(text)

	if textLen <= maxWidth {
		return text, false
	}

	if maxWidth <= ellipsisLen {
		runes := []rune(cfg.Ellipsis)
		return string(runes[:maxWidth]), true
	}

	runes := []rune(text)
	return string(runes[:maxWidth-ellipsisLen]) + cfg.Ellipsis, true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("landscapes", 12, "[1] ", " 3", cfg) -> "[1] lan... 3"
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if utf8.RuneCountInString(combined) <= maxWidth {
		return combined, false
	}

	overhead := utf8.RuneCountInString(prefix) +
		utf8.RuneCountInString(suffix) +
		utf8.RuneCountInString(cfg.Ellipsis)

	if overhead >= maxWidth {
		return TruncateText(combined, maxWidth, cfg)
	}

	runes := []rune(text)
	return prefix + string(runes[:maxWidth-overhead]) + cfg.Ellipsis + suffix, true
}

// TruncateFilename shortens a file name to maxWidth, keeping its extension.
// Example: TruncateFilename("holiday_beach_sunset.jpg", 14, cfg) -> "holiday....jpg"
func TruncateFilename(name string, maxWidth int, cfg TextConfig) (string, bool) {
	if utf8.RuneCountInString(name) <= maxWidth {
		return name, false
	}

	ext := filepath.Ext(name)
	extLen := utf8.RuneCountInString(ext)
	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	if ext == "" || extLen+ellipsisLen >= maxWidth {
		return TruncateText(name, maxWidth, cfg)
	}

	stem := []rune(strings.TrimSuffix(name, ext))
	return string(stem[:maxWidth-extLen-ellipsisLen]) + cfg.Ellipsis + ext, true
}

// TruncatePathFromLeft keeps the tail of a path, which carries the
// directory the user cares about.
// Example: TruncatePathFromLeft("/home/me/photos/2024", 12, cfg) -> ".../2024"
func TruncatePathFromLeft(path string, maxWidth int, cfg TextConfig) string {
	if utf8.RuneCountInString(path) <= maxWidth {
		return path
	}

	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	if maxWidth <= ellipsisLen {
		text, _ := TruncateText(path, maxWidth, cfg)
		return text
	}

	parts := strings.Split(path, string(filepath.Separator))
	tail := ""
	for i := len(parts) - 1; i >= 0; i-- {
		candidate := parts[i]
		if tail != "" {
			candidate += string(filepath.Separator) + tail
		}
		if utf8.RuneCountInString(candidate)+ellipsisLen+1 > maxWidth {
			break
		}
		tail = candidate
	}

	if tail == "" {
		runes := []rune(path)
		return cfg.Ellipsis + string(runes[len(runes)-(maxWidth-ellipsisLen):])
	}
	return cfg.Ellipsis + string(filepath.Separator) + tail
}
