package storage

import (
	"testing"

	"github.com/sokbolag/branschmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorRecord_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		record VectorRecord
	}{
		{
			name:   "typical record",
			record: VectorRecord{Model: "embeddinggemma", Vector: []float32{0.1, -0.5, 0.93, 0}},
		},
		{
			name:   "empty vector",
			record: VectorRecord{Model: "text-embedding-3-small", Vector: []float32{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalVectorRecord(&tt.record)
			got, err := UnmarshalVectorRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record.Model, got.Model)
			assert.Equal(t, tt.record.Vector, got.Vector)
		})
	}
}

func TestUnmarshalVectorRecord_Truncated(t *testing.T) {
	data := MarshalVectorRecord(&VectorRecord{Model: "embeddinggemma", Vector: []float32{0.1, 0.2, 0.3}})
	_, err := UnmarshalVectorRecord(data[:len(data)-2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestID_RoundTrip(t *testing.T) {
	id := core.IDFromContent("software development programming saas")
	got, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
