package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FormatJSON pretty-prints a JSON document with two-space indentation,
// preserving key order and number formatting from the source. Malformed
// input produces an error pinpointing the line and column of the failure.
func FormatJSON(text string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return "", positionedError(text, err)
	}
	return buf.String(), nil
}

// positionedError rewrites a JSON syntax error into a message that shows
// the offending line with a column marker, e.g.
//
//	Parse error on line 2 column 8:
//	  "a": 1,}
//	-------^
//	invalid character '}' looking for beginning of value
func positionedError(text string, err error) error {
	var syn *json.SyntaxError
	if !errors.As(err, &syn) {
		return err
	}

	line, column := 1, 0
	for i, r := range text {
		if int64(i) >= syn.Offset {
			break
		}
		if r == '\n' {
			line++
			column = 0
		} else {
			column++
		}
	}

	lines := strings.Split(text, "\n")
	errorLine := ""
	if line-1 < len(lines) {
		errorLine = lines[line-1]
	}

	marker := strings.Repeat("-", column) + "^"

	return fmt.Errorf("parse error on line %d column %d:\n%s\n%s\n%v",
		line, column+1, errorLine, marker, syn)
}
