package transform

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, header, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." +
		enc.EncodeToString([]byte(payload)) + "." +
		enc.EncodeToString([]byte("fake-signature"))
}

func TestDecodeJWT(t *testing.T) {
	token := makeToken(t,
		`{"alg":"HS256","typ":"JWT"}`,
		`{"sub":"1234567890","name":"Ann Example","admin":true}`)

	out, err := DecodeJWT(token)
	require.NoError(t, err)

	assert.Contains(t, out, `"alg": "HS256"`)
	assert.Contains(t, out, `"sub": "1234567890"`)
	assert.Contains(t, out, `"name": "Ann Example"`)
	assert.Contains(t, out, "Signature (base64):")
	assert.Contains(t, out, `"token_parts"`)
}

func TestDecodeJWT_TrimsWhitespace(t *testing.T) {
	token := makeToken(t, `{"alg":"none"}`, `{"sub":"x"}`)
	out, err := DecodeJWT("  " + token + "\n")
	require.NoError(t, err)
	assert.Contains(t, out, `"alg": "none"`)
}

func TestDecodeJWT_Deterministic(t *testing.T) {
	token := makeToken(t, `{"alg":"HS256"}`, `{"sub":"x","iat":1700000000}`)
	first, err := DecodeJWT(token)
	require.NoError(t, err)
	second, err := DecodeJWT(token)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeJWT_Errors(t *testing.T) {
	_, err := DecodeJWT("")
	assert.EqualError(t, err, "empty JWT token")

	_, err = DecodeJWT("only.two")
	assert.EqualError(t, err, "invalid JWT format, expected 3 parts separated by dots")

	_, err = DecodeJWT("!!!.???.###")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JWT header")

	// Valid base64 but the segment is not JSON.
	enc := base64.RawURLEncoding
	notJSON := enc.EncodeToString([]byte("not json"))
	_, err = DecodeJWT(notJSON + "." + notJSON + ".sig")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON in JWT part")
}
