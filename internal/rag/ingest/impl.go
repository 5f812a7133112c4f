package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var supportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".pdf":      true,
	".docx":     true,
	".rtf":      true,
	".odt":      true,
}

// discoverFiles walks the corpus root and returns supported files in a
// stable sorted order. Hidden and underscore-prefixed entries and
// node_modules trees are skipped.
func discoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

type document struct {
	RelPath  string
	Title    string
	Category string
	Body     string
}

func (p *Pipeline) loadDocument(root, path string) (document, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return document{}, fmt.Errorf("resolving relative path: %w", err)
	}
	rel = filepath.ToSlash(rel)

	doc := document{
		RelPath:  rel,
		Category: categoryOf(rel),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		raw, err := os.ReadFile(path)
		if err != nil {
			return document{}, fmt.Errorf("reading file: %w", err)
		}
		meta, body := stripFrontmatter(string(raw))
		doc.Body = body
		doc.Title = resolveTitle(meta, body, path)
		if meta.Category != "" {
			doc.Category = meta.Category
		}

	case ".pdf":
		text, err := extractPDF(path, p.logger)
		if err != nil {
			return document{}, err
		}
		doc.Body = text
		doc.Title = titleFromFilename(path)

	default:
		text, err := extractDocTxtRtf(path, p.logger)
		if err != nil {
			return document{}, err
		}
		doc.Body = text
		doc.Title = titleFromFilename(path)
	}

	if strings.TrimSpace(doc.Body) == "" {
		return document{}, fmt.Errorf("document %q has no extractable text", rel)
	}
	return doc, nil
}

// categoryOf takes the top path segment of a corpus-relative path. Files
// sitting directly in the root get "general".
func categoryOf(rel string) string {
	if i := strings.Index(rel, "/"); i > 0 {
		return rel[:i]
	}
	return "general"
}
