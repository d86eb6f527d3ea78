package extract

import (
	"errors"
	"testing"
)

func TestExtractTextRejectsGarbage(t *testing.T) {
	extractor := NewPDFExtractor()

	cases := map[string][]byte{
		"empty":         {},
		"plain text":    []byte("just some text, not a pdf"),
		"truncated pdf": []byte("%PDF-1.4\n"),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := extractor.ExtractText(data)
			if err == nil {
				t.Fatal("expected an error for non-PDF input")
			}
			if !errors.Is(err, ErrUnsupportedDocument) {
				t.Errorf("error = %v, want ErrUnsupportedDocument", err)
			}
		})
	}
}
