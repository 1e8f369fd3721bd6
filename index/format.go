package index

import "fmt"

// TruncatePath shortens a path for display, keeping the end which is more informative.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(path)
	if maxLen < 4 {
		return string(runes[:min(len(runes), maxLen)])
	}
	if len(runes) <= maxLen {
		return path
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
