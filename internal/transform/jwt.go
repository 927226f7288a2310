package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeJWT decodes a JWT's header and payload segments and renders them as
// pretty-printed JSON alongside the raw token parts. The signature is not
// verified; this is an inspection tool, not an authenticator.
func DecodeJWT(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("empty JWT token")
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", errors.New("invalid JWT format, expected 3 parts separated by dots")
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return "", fmt.Errorf("failed to decode JWT header: %w", err)
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode JWT payload: %w", err)
	}

	out := map[string]any{
		"header":    header,
		"payload":   payload,
		"signature": fmt.Sprintf("Signature (base64): %s", parts[2]),
		"token_parts": map[string]string{
			"header":    parts[0],
			"payload":   parts[1],
			"signature": parts[2],
		},
	}

	formatted, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format JWT output: %w", err)
	}
	return string(formatted), nil
}

// decodeSegment decodes one base64url token segment into its JSON value.
func decodeSegment(seg string) (json.RawMessage, error) {
	decoded, err := jwt.NewParser().DecodeSegment(seg)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if !utf8.Valid(decoded) {
		return nil, errors.New("invalid UTF-8 in JWT part")
	}
	if !json.Valid(decoded) {
		return nil, errors.New("invalid JSON in JWT part")
	}
	return json.RawMessage(decoded), nil
}
