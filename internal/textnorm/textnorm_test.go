package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "rust", "rust"},
		{"fullwidth", "ｒｕｓｔ", "rust"},
		{"combining accent composed", "cafe\u0301", "caf\u00e9"},
		{"ligature", "ﬁle", "file"},
		{"control characters", "ru\x00st\t", "rust"},
		{"surrounding whitespace", "  rust  ", "rust"},
		{"inner whitespace kept", "rust lang", "rust lang"},
		{"tab becomes space", "rust\tlang", "rust lang"},
		{"newline becomes space", "rust\r\nlang", "rust  lang"},
		{"invalid utf-8 unchanged", "\xff", "\xff"},
		{"invalid utf-8 with text unchanged", " \xfdq\x00 ", " \xfdq\x00 "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
