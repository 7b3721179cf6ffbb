package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"assessly/internal/domain"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// Kind is the declared document type of an upload
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// KindFromFilename derives the document kind from the file extension.
// Only .pdf and .docx uploads are accepted.
func KindFromFilename(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	default:
		return "", domain.NewInvalidInputError("Invalid file type. Please upload a PDF or DOCX file.")
	}
}

// Text extracts plain text from the raw file bytes. An unreadable document or
// one that yields no text at all is an extraction error; no quiz can be built
// from it.
func Text(data []byte, kind Kind) (string, error) {
	var (
		text string
		err  error
	)

	switch kind {
	case KindPDF:
		text, err = fromPDF(data)
	case KindDOCX:
		text, err = fromDOCX(data)
	default:
		return "", domain.NewInvalidInputError(fmt.Sprintf("unsupported document kind: %q", kind))
	}

	if err != nil {
		return "", domain.NewExtractionError("Failed to extract text from document", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewExtractionError("No text extracted from file", nil)
	}
	return text, nil
}

func fromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func fromDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(para.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
