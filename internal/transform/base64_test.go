package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBase64_RoundTrip(t *testing.T) {
	encoded, err := EncodeBase64("hello, world")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8sIHdvcmxk", encoded)

	decoded, err := DecodeBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", decoded)
}

func TestEncodeBase64_EmptyIsNotAnError(t *testing.T) {
	out, err := EncodeBase64("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestDecodeBase64_EmptyIsNotAnError(t *testing.T) {
	out, err := DecodeBase64("  \n")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestDecodeBase64_TrimsWhitespace(t *testing.T) {
	out, err := DecodeBase64(" aGk= \n")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestDecodeBase64_Invalid(t *testing.T) {
	_, err := DecodeBase64("not base64!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base64 encoding")
}

func TestDecodeBase64_NonUTF8(t *testing.T) {
	// 0xFF 0xFE is valid base64 payload but not valid UTF-8 text.
	_, err := DecodeBase64("//4=")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid UTF-8 in decoded data")
}

func TestEncodeBase64_Unicode(t *testing.T) {
	encoded, err := EncodeBase64("héllo")
	require.NoError(t, err)
	decoded, err := DecodeBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, "héllo", decoded)
}
