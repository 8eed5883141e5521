package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(1, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(1))
	assert.False(t, hub.IsOnline(2))

	hub.Broadcast(1, "hello")
	select {
	case msg := <-client.Send:
		assert.Equal(t, "hello", string(msg))
	default:
		t.Fatal("expected message in send buffer")
	}

	// Messages for other users do not reach this client.
	hub.Broadcast(2, "not for you")
	select {
	case <-client.Send:
		t.Fatal("unexpected message")
	default:
	}

	hub.Unregister(client)
	assert.False(t, hub.IsOnline(1))
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register(1, nil)
	require.NoError(t, err)
	c2, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.BroadcastAll("everyone")
	assert.Equal(t, "everyone", string(<-c1.Send))
	assert.Equal(t, "everyone", string(<-c2.Send))
}

func TestHubPerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err)

	// Other users are unaffected.
	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}
