package utils

import "testing"

func TestHashBytes(t *testing.T) {
	// Known SHA-256 of "abc".
	got := HashBytes([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("HashBytes = %s, want %s", got, want)
	}

	if HashBytes([]byte("abc")) != HashBytes([]byte("abc")) {
		t.Error("identical input must hash identically")
	}
	if HashBytes([]byte("abc")) == HashBytes([]byte("abd")) {
		t.Error("different input must hash differently")
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays whole", "hello", 10, "hello"},
		{"exact length stays whole", "hello", 5, "hello"},
		{"long gets truncated", "hello world", 5, "he..."},
		{"multibyte runes respected", "héllo wörld", 7, "héll..."},
		{"tiny cap keeps no ellipsis", "hello", 2, "he"},
		{"surrounding space trimmed", "  hi  ", 10, "hi"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snippet(tt.in, tt.max); got != tt.want {
				t.Errorf("Snippet(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
