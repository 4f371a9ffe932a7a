package rdfgraph

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

const (
	rdfNS       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfType     = rdfNS + "type"
	rdfXMLLit   = rdfNS + "XMLLiteral"
	xmlNS       = "http://www.w3.org/XML/1998/namespace"
	xmlnsPrefix = "xmlns"

	// blankPrefix labels anonymous nodes minted by the decoder.
	blankPrefix = "rdfxml"
)

// rdfxmlDecoder reads striped RDF/XML. Attribute values of rdf:about,
// rdf:resource and rdf:datatype are taken as IRIs verbatim, so URIs such as
// info:fedora/demo:1 are never read as prefixed names.
type rdfxmlDecoder struct {
	dec        *xml.Decoder
	statements []domain.Statement
	blanks     int
}

func decodeRDFXML(r io.Reader) ([]domain.Statement, error) {
	d := &rdfxmlDecoder{dec: xml.NewDecoder(r)}
	if err := d.document(); err != nil {
		return nil, fmt.Errorf("%w: decode rdf/xml: %w", domain.ErrStructural, err)
	}
	return d.statements, nil
}

func (d *rdfxmlDecoder) document() error {
	for {
		tok, err := d.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if isRDF(start.Name, "RDF") {
			return d.nodeElements()
		}
		if _, err := d.nodeElement(start); err != nil {
			return err
		}
	}
}

// nodeElements reads the children of rdf:RDF.
func (d *rdfxmlDecoder) nodeElements() error {
	for {
		tok, err := d.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := d.nodeElement(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// nodeElement reads one node and its property elements and returns its subject.
func (d *rdfxmlDecoder) nodeElement(start xml.StartElement) (domain.Term, error) {
	subject, err := d.subjectOf(start)
	if err != nil {
		return domain.Term{}, err
	}

	if !isRDF(start.Name, "Description") {
		if start.Name.Space == "" {
			return domain.Term{}, fmt.Errorf("node element %s has no namespace", start.Name.Local)
		}
		d.add(subject, rdfType, domain.IRI(start.Name.Space+start.Name.Local))
	}
	d.propertyAttrs(subject, start.Attr)

	return subject, d.propertyElements(subject)
}

// propertyElements reads property elements until the enclosing element ends.
func (d *rdfxmlDecoder) propertyElements(subject domain.Term) error {
	for {
		tok, err := d.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.propertyElement(subject, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (d *rdfxmlDecoder) propertyElement(subject domain.Term, start xml.StartElement) error {
	if start.Name.Space == "" {
		return fmt.Errorf("property element %s has no namespace", start.Name.Local)
	}
	predicate := start.Name.Space + start.Name.Local

	var resource, nodeID, datatype, parseType string
	var hasResource, hasNodeID bool
	var others []xml.Attr
	for _, a := range start.Attr {
		switch {
		case isRDF(a.Name, "resource"):
			resource, hasResource = a.Value, true
		case isRDF(a.Name, "nodeID"):
			nodeID, hasNodeID = a.Value, true
		case isRDF(a.Name, "datatype"):
			datatype = a.Value
		case isRDF(a.Name, "parseType"):
			parseType = a.Value
		case isPropertyAttr(a):
			others = append(others, a)
		}
	}

	switch parseType {
	case "":
	case "Resource":
		node := d.newBlank()
		d.add(subject, predicate, node)
		return d.propertyElements(node)
	case "Literal":
		var inner struct {
			XML string `xml:",innerxml"`
		}
		if err := d.dec.DecodeElement(&inner, &start); err != nil {
			return err
		}
		d.add(subject, predicate, domain.TypedLiteral(inner.XML, rdfXMLLit))
		return nil
	default:
		return fmt.Errorf("unsupported rdf:parseType %q on %s", parseType, predicate)
	}

	if hasResource || hasNodeID || len(others) > 0 {
		var object domain.Term
		switch {
		case hasResource:
			object = domain.IRI(resource)
		case hasNodeID:
			object = domain.Blank(nodeID)
		default:
			object = d.newBlank()
		}
		d.add(subject, predicate, object)
		d.propertyAttrs(object, others)
		return d.expectEnd(predicate)
	}

	var text strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if strings.TrimSpace(text.String()) != "" {
				return fmt.Errorf("mixed content in %s", predicate)
			}
			object, err := d.nodeElement(t)
			if err != nil {
				return err
			}
			d.add(subject, predicate, object)
			return d.expectEnd(predicate)
		case xml.EndElement:
			if datatype != "" {
				d.add(subject, predicate, domain.TypedLiteral(text.String(), datatype))
			} else {
				d.add(subject, predicate, domain.Literal(text.String()))
			}
			return nil
		}
	}
}

// subjectOf resolves the subject of a node element.
func (d *rdfxmlDecoder) subjectOf(start xml.StartElement) (domain.Term, error) {
	var subject *domain.Term
	set := func(t domain.Term) error {
		if subject != nil {
			return fmt.Errorf("node element %s has more than one of rdf:about, rdf:ID, rdf:nodeID", start.Name.Local)
		}
		subject = &t
		return nil
	}

	for _, a := range start.Attr {
		var err error
		switch {
		case isRDF(a.Name, "about"):
			err = set(domain.IRI(a.Value))
		case isRDF(a.Name, "ID"):
			err = set(domain.IRI("#" + a.Value))
		case isRDF(a.Name, "nodeID"):
			err = set(domain.Blank(a.Value))
		}
		if err != nil {
			return domain.Term{}, err
		}
	}

	if subject == nil {
		return d.newBlank(), nil
	}
	return *subject, nil
}

// propertyAttrs adds a literal statement per property attribute.
func (d *rdfxmlDecoder) propertyAttrs(subject domain.Term, attrs []xml.Attr) {
	for _, a := range attrs {
		if !isPropertyAttr(a) {
			continue
		}
		if isRDF(a.Name, "type") {
			d.add(subject, rdfType, domain.IRI(a.Value))
			continue
		}
		d.add(subject, a.Name.Space+a.Name.Local, domain.Literal(a.Value))
	}
}

// expectEnd consumes whitespace up to the end of the current element.
func (d *rdfxmlDecoder) expectEnd(predicate string) error {
	for {
		tok, err := d.next()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			return fmt.Errorf("unexpected element content in %s", predicate)
		}
	}
}

// next returns the next token that is not ignorable. Text other than
// whitespace is an error here.
func (d *rdfxmlDecoder) next() (xml.Token, error) {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.StartElement, xml.EndElement:
			return t, nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("unexpected text %q", strings.TrimSpace(string(t)))
			}
		}
	}
}

func (d *rdfxmlDecoder) add(subject domain.Term, predicate string, object domain.Term) {
	d.statements = append(d.statements, domain.Statement{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	})
}

func (d *rdfxmlDecoder) newBlank() domain.Term {
	d.blanks++
	return domain.Blank(blankPrefix + strconv.Itoa(d.blanks))
}

func isRDF(name xml.Name, local string) bool {
	return name.Space == rdfNS && name.Local == local
}

// isPropertyAttr reports whether a is a property attribute rather than
// syntax or a namespace declaration.
func isPropertyAttr(a xml.Attr) bool {
	switch {
	case a.Name.Space == "" || a.Name.Space == xmlnsPrefix || a.Name.Space == xmlNS:
		return false
	case a.Name.Space == rdfNS:
		return a.Name.Local == "type"
	default:
		return true
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
