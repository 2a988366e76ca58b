// Package xml provides XML well-formedness checks and XPath queries used to
// verify generated e-book manifests.
//
// Security Notes:
//   - Go's xml.Decoder does not fetch external entities, and Validate
//     disables internal entity expansion as well.
//   - xmlquery parses with encoding/xml and inherits the same properties.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element.
type Node struct {
	node *xmlquery.Node
}

// ValidationResult contains the result of XML validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Line    int
	Message string
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Validate checks that data is well-formed XML.
func Validate(data []byte) ValidationResult {
	result := ValidationResult{Valid: true}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	// XXE Protection (CWE-611)
	decoder.Entity = map[string]string{}

	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			if se, ok := err.(*xml.SyntaxError); ok {
				line = se.Line
			}
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{Line: line, Message: err.Error()})
			break
		}
	}

	return result
}

// XPath returns all nodes matching expr.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst returns the first node matching expr, or nil.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Name returns the local element name.
func (n *Node) Name() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the concatenated text content.
func (n *Node) Text() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// Attr returns an attribute value, or "".
func (n *Node) Attr(name string) string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}
