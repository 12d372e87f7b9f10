package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a single page PDF with a correct xref table.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	content := "BT /F1 12 Tf 72 720 Td (" + text + ") Tj ET"
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)

	return buf.Bytes()
}

func TestExtractTextFromPDF(t *testing.T) {
	parser := NewPDFParserService()

	text, err := parser.ExtractText(buildPDF(t, "Golang"))
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	if !strings.Contains(text, "Golang") {
		t.Fatalf("expected extracted text to contain Golang, got %q", text)
	}
}

func TestExtractPDFPageCount(t *testing.T) {
	content, err := extractPDF(buildPDF(t, "Kubernetes"))
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	if content.PageCount != 1 {
		t.Fatalf("expected 1 page, got %d", content.PageCount)
	}
	if !strings.Contains(content.Text, "Kubernetes") {
		t.Fatalf("expected page text, got %q", content.Text)
	}
}

func TestExtractTextEmptyPage(t *testing.T) {
	parser := NewPDFParserService()

	_, err := parser.ExtractText(buildPDF(t, ""))
	if !errors.Is(err, ErrNoPDFText) {
		t.Fatalf("expected ErrNoPDFText, got %v", err)
	}
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	parser := NewPDFParserService()

	if _, err := parser.ExtractText([]byte("plain text renamed to resume.pdf")); err == nil {
		t.Fatal("expected error for non-PDF content")
	}
	if _, err := parser.ExtractText(nil); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("  Jane Doe  \n\n\n   Backend Engineer \n\t\n")
	if got != "Jane Doe\nBackend Engineer" {
		t.Fatalf("CleanText() = %q", got)
	}
}
