package foxml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// digitalObject is the root element of a FOXML 1.1 document.
type digitalObject struct {
	XMLName     xml.Name     `xml:"digitalObject"`
	Version     string       `xml:"VERSION,attr"`
	PID         string       `xml:"PID,attr"`
	Properties  []property   `xml:"objectProperties>property"`
	Datastreams []datastream `xml:"datastream"`
}

type property struct {
	Name  string `xml:"NAME,attr"`
	Value string `xml:"VALUE,attr"`
}

type datastream struct {
	ID           string              `xml:"ID,attr"`
	State        string              `xml:"STATE,attr"`
	ControlGroup string              `xml:"CONTROL_GROUP,attr"`
	Versions     []datastreamVersion `xml:"datastreamVersion"`
}

type datastreamVersion struct {
	ID              string           `xml:"ID,attr"`
	Label           string           `xml:"LABEL,attr"`
	Created         string           `xml:"CREATED,attr"`
	MIMEType        string           `xml:"MIMETYPE,attr"`
	FormatURI       string           `xml:"FORMAT_URI,attr"`
	XMLContent      *innerXML        `xml:"xmlContent"`
	BinaryContent   *string          `xml:"binaryContent"`
	ContentLocation *contentLocation `xml:"contentLocation"`
}

type innerXML struct {
	Inner string `xml:",innerxml"`
}

type contentLocation struct {
	Type string `xml:"TYPE,attr"`
	Ref  string `xml:"REF,attr"`
}

// decodeObject parses a FOXML document.
func decodeObject(r io.Reader) (*digitalObject, error) {
	var obj digitalObject
	if err := xml.NewDecoder(r).Decode(&obj); err != nil {
		return nil, err
	}
	if obj.PID == "" {
		return nil, fmt.Errorf("digitalObject has no PID")
	}
	return &obj, nil
}
