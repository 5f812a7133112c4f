package ingest

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type frontmatter struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
}

// stripFrontmatter removes a leading fenced YAML block and parses the
// fields we care about. An unparseable block is still stripped so its
// markup never reaches the chunker.
func stripFrontmatter(content string) (frontmatter, string) {
	var meta frontmatter

	trimmed := strings.TrimLeft(content, "\uFEFF")
	if !strings.HasPrefix(trimmed, "---\n") && !strings.HasPrefix(trimmed, "---\r\n") {
		return meta, content
	}

	rest := trimmed[strings.Index(trimmed, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, content
	}
	block := rest[:end]

	body := rest[end+len("\n---"):]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return frontmatter{}, body
	}
	return meta, body
}

// resolveTitle prefers frontmatter, then the first markdown heading, then
// the filename.
func resolveTitle(meta frontmatter, body, path string) string {
	if meta.Title != "" {
		return meta.Title
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return titleFromFilename(path)
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	return strings.TrimSpace(stem)
}
