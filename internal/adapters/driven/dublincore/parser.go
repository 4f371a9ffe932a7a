// Package dublincore reads oai_dc Dublin Core records.
package dublincore

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.DCParser = (*Parser)(nil)

// Parser decodes a Dublin Core record. Each child element of the root
// becomes a value of the element URI formed by its namespace and local name.
type Parser struct{}

// NewParser creates a Dublin Core parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the record's element URIs and values in document order.
// Whitespace around values is trimmed; empty elements are kept as empty
// values.
func (p *Parser) Parse(r io.Reader) (*domain.DCRecord, error) {
	dec := xml.NewDecoder(r)
	record := domain.NewDCRecord()

	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode dublin core: %w", domain.ErrStructural, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth++
				continue
			}
			var value string
			if err := dec.DecodeElement(&value, &el); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrStructural, el.Name.Local, err)
			}
			record.Add(elementURI(el.Name), strings.TrimSpace(value))
		case xml.EndElement:
			depth--
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w: unterminated dublin core record", domain.ErrStructural)
	}
	return record, nil
}

// elementURI joins an element's namespace and local name.
func elementURI(name xml.Name) string {
	if name.Space == "" || strings.HasSuffix(name.Space, "/") || strings.HasSuffix(name.Space, "#") {
		return name.Space + name.Local
	}
	return name.Space + "/" + name.Local
}
