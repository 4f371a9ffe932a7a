package domain

// Statement is a triple read from a structured datastream.
// Subject and Object keep their term kind so callers can reject shapes
// they do not handle.
type Statement struct {
	Subject   Term
	Predicate string
	Object    Term
}

// DCRecord is a parsed Dublin Core record.
type DCRecord struct {
	// Elements lists element URIs in the order first seen.
	Elements []string

	// Values maps each element URI to its values in document order.
	Values map[string][]string
}

// NewDCRecord returns an empty record.
func NewDCRecord() *DCRecord {
	return &DCRecord{Values: make(map[string][]string)}
}

// Add appends a value for an element URI.
func (r *DCRecord) Add(uri, value string) {
	if _, ok := r.Values[uri]; !ok {
		r.Elements = append(r.Elements, uri)
	}
	r.Values[uri] = append(r.Values[uri], value)
}
