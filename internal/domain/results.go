package domain

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mouse-blink/hosttest/internal/adapter"
	m "github.com/mouse-blink/hosttest/internal/model"
)

// ResultParser extracts failed cases from framework-emitted result documents.
type ResultParser interface {
	ParseFile(path m.Path) ([]m.CaseFailure, error)
}

type resultParser struct {
	fs adapter.BuildFSAdapter
}

// NewResultParser constructs a ResultParser reading documents through the
// filesystem adapter.
func NewResultParser(fs adapter.BuildFSAdapter) ResultParser {
	return &resultParser{fs: fs}
}

// resultNode is a schema-agnostic XML element. Both frameworks nest results
// as suite→case→result even though their tag names differ, so the walk is by
// depth and only the `failure` tag is interpreted.
type resultNode struct {
	XMLName  xml.Name
	Name     string       `xml:"name,attr"`
	Text     string       `xml:",chardata"`
	Children []resultNode `xml:",any"`
}

// ParseFile parses one result document. Malformed XML is a hard error: a
// corrupt result file means the test harness is broken, not that a test
// failed.
func (p *resultParser) ParseFile(path m.Path) ([]m.CaseFailure, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result document %s: %w", path, err)
	}

	var root resultNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse result document %s: %w", path, err)
	}

	var failures []m.CaseFailure

	for _, suite := range root.Children {
		for _, testCase := range suite.Children {
			for _, result := range testCase.Children {
				if result.XMLName.Local != "failure" {
					continue
				}

				failures = append(failures, m.CaseFailure{
					Case:    testCase.Name,
					Message: strings.TrimSpace(result.Text),
				})
			}
		}
	}

	return failures, nil
}
