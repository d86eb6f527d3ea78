package extract

import "errors"

// ErrUnsupportedDocument marks input the extractor cannot read (encrypted or
// corrupt files). Callers translate it into a client-visible bad request.
var ErrUnsupportedDocument = errors.New("unsupported document")

// TextExtractor turns raw file bytes into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}
