package export

import "strings"

// SafeFileName turns an arbitrary title into a file-system-safe base name:
// path separators, wildcards, quotes, and control characters become spaces,
// whitespace runs collapse, and an empty or dots-only result falls back.
// Unicode letters pass through untouched.
func SafeFileName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		name = fallback
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20:
			b.WriteRune(' ')
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if cleaned == "" || strings.Trim(cleaned, ".") == "" {
		return fallback
	}
	return cleaned
}
