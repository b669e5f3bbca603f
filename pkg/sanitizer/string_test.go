package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  John Doe  ",
			want:  "John Doe",
		},
		{
			name:  "multiple spaces between words",
			input: "John    Doe",
			want:  "John Doe",
		},
		{
			name:  "tabs and newlines",
			input: "John\t\nDoe",
			want:  "John Doe",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Zoë O'Brien-Smith ",
			want:  "Zoë O'Brien-Smith",
		},
		{
			name:  "hebrew characters",
			input: " יוסי כהן ",
			want:  "יוסי כהן",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "multiple spaces",
			input: "hello    world",
			want:  "hello world",
		},
		{
			name:  "tabs and newlines",
			input: "hello\t\nworld",
			want:  "hello world",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCarType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SUV", "SUV"},
		{"  Sedan ", "Sedan"},
		{" suv ", "suv"},
		{"pickup", "pickup"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCarType(tt.input); got != tt.want {
			t.Errorf("NormalizeCarType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOptional(t *testing.T) {
	if Optional(nil, NormalizeName) != nil {
		t.Error("nil input should stay nil")
	}
	in := "  Jane   Roe "
	got := Optional(&in, NormalizeName)
	if got == nil || *got != "Jane Roe" {
		t.Errorf("Optional() = %v, want Jane Roe", got)
	}
	if in != "  Jane   Roe " {
		t.Error("Optional must not modify its input")
	}
}
