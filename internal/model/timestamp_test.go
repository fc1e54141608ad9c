package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsNaiveISO(t *testing.T) {
	for _, in := range []string{
		`"2024-03-01T18:30:00Z"`,
		`"2024-03-01T18:30:00"`,
		`"2024-03-01T18:30:00.123456"`,
		`"2024-03-01 18:30:00"`,
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.Equal(t, 2024, ts.Year())
		assert.Equal(t, 18, ts.Hour())
		assert.Equal(t, time.UTC, ts.Location())
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestampMarshalsUTC(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	ts := Timestamp{time.Date(2024, 3, 1, 21, 0, 0, 0, loc)}
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01T18:00:00Z"`, string(out))
}
