package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDetectTheme(t *testing.T) {
	tests := []struct {
		name      string
		colorfgbg string
		want      string
	}{
		{"dark background", "15;0", "dark"},
		{"light background single digit", "0;8", "light"},
		{"light background double digit", "0;15", "light"},
		{"three-part value uses last", "0;default;15", "light"},
		{"empty", "", ""},
		{"no separator", "15", ""},
		{"non-numeric background", "0;default", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectTheme(tt.colorfgbg); got != tt.want {
				t.Errorf("detectTheme(%q) = %q, want %q", tt.colorfgbg, got, tt.want)
			}
		})
	}
}

func TestGetEffectiveTheme(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("chart.theme", "light")
	if got := GetEffectiveTheme(); got != "light" {
		t.Errorf("explicit theme = %q, want light", got)
	}

	viper.Set("chart.theme", "auto")
	t.Setenv("COLORFGBG", "0;15")
	if got := GetEffectiveTheme(); got != "light" {
		t.Errorf("auto with light COLORFGBG = %q, want light", got)
	}

	t.Setenv("COLORFGBG", "15;0")
	if got := GetEffectiveTheme(); got != "dark" {
		t.Errorf("auto with dark COLORFGBG = %q, want dark", got)
	}

	t.Setenv("COLORFGBG", "")
	if got := GetEffectiveTheme(); got != "dark" {
		t.Errorf("auto without COLORFGBG = %q, want dark", got)
	}
}
