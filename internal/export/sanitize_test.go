package export

import "testing"

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{name: "plain", input: "Лето", fallback: "Фото", want: "Лето"},
		{name: "latin", input: "Summer 2024", fallback: "Фото", want: "Summer 2024"},
		{name: "path separators", input: "a/b\\c", fallback: "Фото", want: "a b c"},
		{name: "windows specials", input: `x:*?"<>|y`, fallback: "Фото", want: "x y"},
		{name: "control chars", input: "a\x00b\tc", fallback: "Фото", want: "a b c"},
		{name: "whitespace runs", input: "  a   b  ", fallback: "Фото", want: "a b"},
		{name: "empty", input: "", fallback: "Фото", want: "Фото"},
		{name: "whitespace only", input: "   ", fallback: "Фото", want: "Фото"},
		{name: "dots only", input: "...", fallback: "Фото", want: "Фото"},
		{name: "all illegal", input: `/\:*`, fallback: "Фото", want: "Фото"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeFileName(tc.input, tc.fallback); got != tc.want {
				t.Fatalf("SafeFileName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
