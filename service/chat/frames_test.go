package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	f, err := ParseFrame([]byte(`{"event":"ping","data":{"ts":1712000000000}}`))
	require.NoError(t, err)
	assert.Equal(t, EventPing, f.Event)

	p, err := ExtractPingPayload(f)
	require.NoError(t, err)
	assert.Equal(t, int64(1712000000000), p.TS)
}

func TestParseFrameRejectsGarbage(t *testing.T) {
	_, err := ParseFrame([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseFrame([]byte(`{"data":{}}`))
	assert.Error(t, err, "event is mandatory")
}

func TestMarshalPresenceEmptySetIsArray(t *testing.T) {
	payload, err := MarshalPresence(nil)
	require.NoError(t, err)
	// clients iterate the list; null would break them
	assert.JSONEq(t, `{"event":"getOnlineUsers","data":[]}`, string(payload))
}
