package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
)

func TestEncodeDecodeSlot(t *testing.T) {
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	slot := saveslot.Slot{
		ID:         "slot-1",
		Label:      "main career",
		Data:       []byte{0x46, 0x43, 0x53, 0x56, 0x01},
		Version:    4,
		Phase:      "SEASON",
		PlayerName: "Casey Rookie",
		Year:       2027,
		Round:      9,
		CreatedAt:  created,
		UpdatedAt:  created.Add(time.Hour),
	}

	fields, err := encodeSlot(slot)
	require.NoError(t, err)

	values := map[string]string{
		fieldData:    string(fields[fieldData].([]byte)),
		fieldVersion: fields[fieldVersion].(string),
		fieldMeta:    fields[fieldMeta].(string),
	}
	got, err := decodeSlot("slot-1", values)
	require.NoError(t, err)
	assert.Equal(t, slot.Data, got.Data)
	assert.Equal(t, slot.Version, got.Version)
	assert.Equal(t, slot.PlayerName, got.PlayerName)
	assert.True(t, slot.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, 9, got.Round)
}

func TestCurrentVersion(t *testing.T) {
	version, created, err := currentVersion([]any{nil, nil})
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.True(t, created.IsZero())

	version, created, err = currentVersion([]any{"3", `{"phase":"DRAFT","created_at":"2026-02-01T08:00:00Z"}`})
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)
	assert.Equal(t, 2026, created.Year())

	_, _, err = currentVersion([]any{"three", nil})
	assert.Error(t, err)
}

func TestDecodeSlot_RejectsBadVersion(t *testing.T) {
	_, err := decodeSlot("slot-1", map[string]string{fieldVersion: "x", fieldMeta: "{}"})
	assert.Error(t, err)
}
