package watch_test

import (
	"testing"

	"github.com/felixgeelhaar/evmkit/internal/infrastructure/watch"
)

func TestDocumentFilter(t *testing.T) {
	f := watch.DocumentFilter()

	tests := []struct {
		path  string
		match bool
	}{
		{".evmkit/portfolio.yaml", true},
		{".evmkit/alerts.yml", true},
		{".evmkit/.portfolio.yaml.swp", false},
		{".evmkit/portfolio.yaml~", false},
		{".evmkit/notes.md", false},
	}

	for _, tt := range tests {
		if got := f.Matches(tt.path); got != tt.match {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.match)
		}
	}
}

func TestFilter_NoPatterns(t *testing.T) {
	f := &watch.Filter{}

	if !f.Matches("anything.txt") {
		t.Error("empty filter should match everything")
	}
}
