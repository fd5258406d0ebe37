package controllers

import "testing"

func TestSplitCombinedName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"two parts", "Muhammad Yusuf", "Muhammad", "Yusuf"},
		{"three parts", "Abdullah Al Mamun", "Abdullah", "Al Mamun"},
		{"single word", "Imran", "Imran", ""},
		{"extra spaces", "  Abdur   Rahman  ", "Abdur", "Rahman"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitCombinedName(tt.input)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("splitCombinedName(%q) = (%q, %q), want (%q, %q)",
					tt.input, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}
