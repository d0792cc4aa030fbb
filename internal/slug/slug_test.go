//go:build unit

package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain english", "Hello World", "hello-world"},
		{"mixed case and punctuation", "The Blog's First Post!", "the-blogs-first-post"},
		{"accented latin", "Café au Lait", "cafe-au-lait"},
		{"collapses whitespace runs", "a   b", "a-b"},
		{"trims hyphens", "--edge case--", "edge-case"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.input)
			if got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got != "" && !IsValid(got) {
				t.Errorf("Make(%q) produced invalid slug %q", tt.input, got)
			}
		})
	}
}

func TestMakeArabic(t *testing.T) {
	// Transliteration output depends on the unidecode tables; what matters
	// is that an Arabic title yields a non-empty, well-formed slug.
	got := Make("مقالات متفرقة")
	if got == "" {
		t.Fatal("expected non-empty slug for arabic title")
	}
	if !IsValid(got) {
		t.Errorf("Make produced invalid slug %q", got)
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"a", "home", "mental-health-wellness", "a1-b2"}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "two--hyphens", "UPPER", "with space", "عربي"}
	for _, s := range invalid {
		if IsValid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
