package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	occurredAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)
	id := "txn-123"

	token := EncodeCursor(occurredAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, occurredAt.Equal(decodedAt), "Timestamp should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// Current time survives the round trip at nanosecond precision.
	now := time.Now().UTC()
	nowToken := EncodeCursor(now, "txn-456")
	decodedNow, _, err := DecodeCursor(nowToken)
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
}

func TestDecodeCursorError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Missing separator
	_, _, err = DecodeCursor("MjAyNi0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for a token without a separator")
	assert.Contains(t, err.Error(), "split")

	// Unparseable timestamp
	_, _, err = DecodeCursor("bm90YXRpbWV8dHhuLTEyMw==") // "notatime|txn-123"
	assert.Error(t, err, "Should return an error for an invalid timestamp")
	assert.Contains(t, err.Error(), "time parse")
}
