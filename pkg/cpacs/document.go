// Package cpacs reads the subset of the CPACS aircraft schema that describes
// a fuselage and its cabin decks. The parsed document tree is read-only;
// Parse* functions turn it into the plain structs consumed by the layout
// package.
package cpacs

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/chazu/cabinloft/pkg/log"
)

// Document is a parsed CPACS file.
type Document struct {
	doc *etree.Document
	lg  *log.Logger
}

// ReadFile parses the CPACS file at path.
func ReadFile(path string, lg *log.Logger) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("cpacs: reading %s: %w", path, err)
	}
	return newDocument(doc, lg)
}

// Read parses a CPACS document from r.
func Read(r io.Reader, lg *log.Logger) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("cpacs: parsing document: %w", err)
	}
	return newDocument(doc, lg)
}

// ReadString parses a CPACS document held in memory.
func ReadString(s string, lg *log.Logger) (*Document, error) {
	return Read(strings.NewReader(s), lg)
}

func newDocument(doc *etree.Document, lg *log.Logger) (*Document, error) {
	if doc.Root() == nil {
		return nil, fmt.Errorf("cpacs: document has no root element")
	}
	return &Document{doc: doc, lg: lg}, nil
}

// Root returns the document's root element as a Node.
func (d *Document) Root() Node {
	return Node{el: d.doc.Root(), lg: d.lg}
}

// Node is a read-only view of one element in the document tree.
type Node struct {
	el *etree.Element
	lg *log.Logger
}

// Tag returns the element name.
func (n Node) Tag() string {
	return n.el.Tag
}

// Find returns the first element matching path, relative to n.
func (n Node) Find(path string) (Node, bool) {
	el := n.el.FindElement(path)
	if el == nil {
		return Node{}, false
	}
	return Node{el: el, lg: n.lg}, true
}

// FindAll returns every element matching path in document order.
func (n Node) FindAll(path string) []Node {
	els := n.el.FindElements(path)
	nodes := make([]Node, len(els))
	for i, el := range els {
		nodes[i] = Node{el: el, lg: n.lg}
	}
	return nodes
}

// Field returns the text of the element at path.
func (n Node) Field(path string) (string, error) {
	el := n.el.FindElement(path)
	if el == nil {
		return "", &MissingFieldError{Element: n.el.Tag, Path: path}
	}
	return el.Text(), nil
}

// Float returns the element at path parsed as a float64.
func (n Node) Float(path string) (float64, error) {
	s, err := n.Field(path)
	if err != nil {
		return 0, err
	}
	return parseFloat(path, s)
}

// Int returns the element at path parsed as an int.
func (n Node) Int(path string) (int, error) {
	s, err := n.Field(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Path: path, Token: s, Err: err}
	}
	return v, nil
}

// CustomOrElse returns the text at path, or def when the element is absent.
// Vendor-custom fields cannot be expected in every file, so a missing one is
// reported as a notice rather than an error.
func (n Node) CustomOrElse(path, def string) string {
	el := n.el.FindElement(path)
	if el == nil {
		n.lg.Info("field not found in file, using default", "field", path, "default", def)
		return def
	}
	return el.Text()
}

// CustomFloat is CustomOrElse followed by a float conversion.
func (n Node) CustomFloat(path, def string) (float64, error) {
	return parseFloat(path, n.CustomOrElse(path, def))
}

// NumericArray returns the delimited number list at path. Schema versions
// disagree on the delimiter, so ';' is tried first and a single resulting
// token is re-split on spaces. One trailing delimiter is tolerated.
func (n Node) NumericArray(path string) ([]float64, error) {
	s, err := n.Field(path)
	if err != nil {
		return nil, err
	}
	return ParseNumericArray(path, s)
}

// ParseNumericArray implements the delimiter handling of NumericArray on raw
// text; path is only used for error reporting.
func ParseNumericArray(path, text string) ([]float64, error) {
	s := strings.TrimSpace(text)
	if strings.HasSuffix(s, ";") || strings.HasSuffix(s, " ") {
		s = s[:len(s)-1]
	}

	tokens := strings.Split(s, ";")
	if len(tokens) == 1 {
		tokens = strings.Split(s, " ")
	}

	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := parseFloat(path, tok)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func parseFloat(path, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Path: path, Token: s, Err: err}
	}
	return v, nil
}
