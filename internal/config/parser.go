package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseFile loads a workflow definition from disk, validates it, and returns
// the resulting document.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mgerrors.NewParseError(path, 0, err)
	}

	doc, err := Parse(data)
	if err != nil {
		if parseErr, ok := err.(*mgerrors.ParseError); ok {
			parseErr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes and validates a workflow definition.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, mgerrors.NewParseError("", extractLine(err), err)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
