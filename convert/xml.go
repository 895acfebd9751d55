package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLElement is a parsed XML element with its attributes, text and children.
type XMLElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Text     string       `xml:",chardata"`
	Children []XMLElement `xml:",any"`
}

// Attr returns the value of the attribute with the given local name.
func (e *XMLElement) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first direct child with the given local name.
func (e *XMLElement) Find(name string) *XMLElement {
	for i := range e.Children {
		if e.Children[i].XMLName.Local == name {
			return &e.Children[i]
		}
	}
	return nil
}

// parseXML reads exactly one root element. Only whitespace, comments and
// processing instructions may surround it; a doctype may also precede it.
func parseXML(raw string) (any, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))

	start, err := rootStart(dec)
	if err != nil {
		return nil, err
	}

	var root XMLElement
	if err := dec.DecodeElement(&root, &start); err != nil {
		return nil, err
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return &root, nil
		}
		if err != nil {
			return nil, err
		}

		switch tok := tok.(type) {
		case xml.CharData:
			if strings.TrimSpace(string(tok)) != "" {
				return nil, errors.New("junk after document element")
			}
		case xml.Comment, xml.ProcInst:
		default:
			return nil, fmt.Errorf("unexpected %T after document element", tok)
		}
	}
}

func rootStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, errors.New("no document element")
		}
		if err != nil {
			return xml.StartElement{}, err
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			return tok, nil
		case xml.CharData:
			if strings.TrimSpace(string(tok)) != "" {
				return xml.StartElement{}, errors.New("text before document element")
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
		default:
			return xml.StartElement{}, fmt.Errorf("unexpected %T before document element", tok)
		}
	}
}
