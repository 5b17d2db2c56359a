package services

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := base64.StdEncoding.EncodeToString(raw)

	data, ext, err := DecodeBase64Image(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, ".png", ext)

	data, ext, err = DecodeBase64Image("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, ".jpg", ext)

	_, ext, err = DecodeBase64Image("data:image/webp;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)
}

func TestDecodeBase64ImageRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"%%%",
		"data:image/png,missing-marker",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,",
	}
	for _, payload := range cases {
		_, _, err := DecodeBase64Image(payload)
		assert.Error(t, err, "payload %q", payload)
	}
}
