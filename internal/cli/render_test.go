package cli

import (
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"pdf,png,svg", []string{"pdf", "png", "svg"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		datasetID string
		want      string
	}{
		{"empty output uses dataset id", "", "students", "students"},
		{"strips svg extension", "chart.svg", "students", "chart"},
		{"strips png extension", "out/chart.png", "students", "out/chart"},
		{"keeps unknown extension", "chart.backup", "students", "chart.backup"},
		{"keeps extensionless path", "out/chart", "students", "out/chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.datasetID); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.datasetID, got, tt.want)
			}
		})
	}
}
