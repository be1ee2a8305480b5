package schema

import (
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityV1(t *testing.T) {
	vMarshal := ActivityV1{
		ID:         "0a4a5c1e-8f0e-4a57-9b2f-2c1d1f0e0b11",
		SessionID:  "2d9f8d2e-4b5d-4c1c-8e7a-7a0d6f7b8c90",
		Kind:       "cart_add",
		ProductID:  3,
		Color:      "Black",
		Quantity:   2,
		Selected:   false,
		OccurredAt: time.Date(2025, 11, 28, 12, 0, 0, 123_000_000, time.UTC),
	}

	var activitySchema avro.Schema

	require.NotPanics(t, func() {
		activitySchema = ActivityV1Avro()
	})

	data, err := avro.Marshal(activitySchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal ActivityV1
	err = avro.Unmarshal(activitySchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.Equal(t, vMarshal.ID, vUnmarshal.ID)
	assert.Equal(t, vMarshal.SessionID, vUnmarshal.SessionID)
	assert.Equal(t, vMarshal.Kind, vUnmarshal.Kind)
	assert.Equal(t, vMarshal.ProductID, vUnmarshal.ProductID)
	assert.Equal(t, vMarshal.Color, vUnmarshal.Color)
	assert.Equal(t, vMarshal.Quantity, vUnmarshal.Quantity)
	assert.Empty(t, vUnmarshal.Query)
	assert.False(t, vUnmarshal.Selected)
	assert.True(t, vMarshal.OccurredAt.Equal(vUnmarshal.OccurredAt))
}
