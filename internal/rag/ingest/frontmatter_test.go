package ingest

import (
	"strings"
	"testing"
)

func TestStripFrontmatter(t *testing.T) {
	content := "---\ntitle: Thermodynamics\ncategory: heat\n---\n# Thermodynamics\n\nHeat flows from hot to cold."

	meta, body := stripFrontmatter(content)
	if meta.Title != "Thermodynamics" {
		t.Errorf("title = %q", meta.Title)
	}
	if meta.Category != "heat" {
		t.Errorf("category = %q", meta.Category)
	}
	if strings.Contains(body, "---") {
		t.Errorf("frontmatter fence leaked into body: %q", body)
	}
	if !strings.HasPrefix(body, "# Thermodynamics") {
		t.Errorf("body truncated: %q", body)
	}
}

func TestStripFrontmatterAbsent(t *testing.T) {
	content := "# Plain\n\nNo frontmatter here."
	meta, body := stripFrontmatter(content)
	if meta.Title != "" || body != content {
		t.Errorf("content without frontmatter must pass through unchanged")
	}
}

func TestStripFrontmatterUnclosed(t *testing.T) {
	content := "---\ntitle: Broken\nNo closing fence."
	_, body := stripFrontmatter(content)
	if body != content {
		t.Errorf("unclosed fence must leave content unchanged, got %q", body)
	}
}

func TestStripFrontmatterUnparseableBlockStillStripped(t *testing.T) {
	content := "---\n:::not yaml at all\n---\nBody text."
	meta, body := stripFrontmatter(content)
	if meta.Title != "" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if strings.Contains(body, "not yaml") {
		t.Errorf("bad block leaked into body: %q", body)
	}
	if !strings.Contains(body, "Body text.") {
		t.Errorf("body lost: %q", body)
	}
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name     string
		meta     frontmatter
		body     string
		path     string
		expected string
	}{
		{"frontmatter wins", frontmatter{Title: "From Meta"}, "# From Heading", "a/b.md", "From Meta"},
		{"heading next", frontmatter{}, "intro line\n# From Heading\ntext", "a/b.md", "From Heading"},
		{"filename last", frontmatter{}, "no headings", "a/wave_optics-basics.md", "wave optics basics"},
	}
	for _, tt := range tests {
		if got := resolveTitle(tt.meta, tt.body, tt.path); got != tt.expected {
			t.Errorf("%s: resolveTitle = %q; want %q", tt.name, got, tt.expected)
		}
	}
}
