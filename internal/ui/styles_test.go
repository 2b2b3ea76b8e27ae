package ui

import (
	"testing"
)

func TestStylesRender(t *testing.T) {
	tests := []struct {
		name  string
		style interface{ Render(...string) string }
	}{
		{"TitleStyle", TitleStyle},
		{"SubtleStyle", SubtleStyle},
		{"ErrorStyle", ErrorStyle},
		{"SuccessStyle", SuccessStyle},
		{"WarningStyle", WarningStyle},
		{"BoxStyle", BoxStyle},
		{"ItemStyle", ItemStyle},
		{"HeaderStyle", HeaderStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.style.Render("region1"); result == "" {
				t.Errorf("%s.Render() returned empty string", tt.name)
			}
		})
	}
}
