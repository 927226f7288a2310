package transform

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// EncodeBase64 encodes text as standard base64. Empty input encodes to the
// empty string rather than an error, so interactive panes can clear cleanly.
func EncodeBase64(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}

// DecodeBase64 decodes standard base64 into text, rejecting payloads that
// are not valid UTF-8. Empty input decodes to the empty string.
func DecodeBase64(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if !utf8.Valid(decoded) {
		return "", errors.New("invalid UTF-8 in decoded data")
	}
	return string(decoded), nil
}
