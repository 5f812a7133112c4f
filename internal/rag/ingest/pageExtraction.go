package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/physai/bookrag/pkg/logger_i"
)

func extractPDF(path string, logger *logger_i.Logger) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	numPages := f.NumPage()
	logger.Debug("extractPDF", "path", path, "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page, logger)
		if err != nil {
			// A bad page should not sink the document
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n\n"), nil
}

// extractDocTxtRtf reads a .odt, .docx, .rtf or plaintext file and
// returns the content as a string
func extractDocTxtRtf(path string, logger *logger_i.Logger) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "path", path)
		return "", fmt.Errorf("failed to extract document text: %w", err)
	}
	return text, nil
}

// protectExtract guards against the pdf library hanging on malformed
// pages.
func protectExtract(page pdf.Page, logger *logger_i.Logger) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract", "timeout", true)
		return "", errors.New("timeout")
	}
}
