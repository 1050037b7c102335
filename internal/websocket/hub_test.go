package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitForClientCount(t *testing.T, hub *Hub, want int) {
	deadline := time.After(time.Second)
	for {
		if hub.ClientCount() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("client count never reached %d", want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// TestHubRegisterUnregister 测试客户端注册与注销
func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("c-1", "p-1", hub, nil)
	hub.Register <- client
	waitForClientCount(t, hub, 1)

	hub.Unregister <- client
	waitForClientCount(t, hub, 0)

	// 注销会关闭发送 channel
	_, open := <-client.Send
	assert.False(t, open)
}

// TestHubSendToParty 测试按用户定向推送
func TestHubSendToParty(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := NewClient("c-1", "p-1", hub, nil)
	c2 := NewClient("c-2", "p-2", hub, nil)
	hub.Register <- c1
	hub.Register <- c2
	waitForClientCount(t, hub, 2)

	hub.SendToParty("p-1", []byte(`{"document_id":"d-1"}`))

	select {
	case msg := <-c1.Send:
		assert.Contains(t, string(msg), "d-1")
	case <-time.After(time.Second):
		t.Fatal("p-1 never received the message")
	}

	// p-2 不应收到
	select {
	case <-c2.Send:
		t.Fatal("p-2 should not receive the message")
	case <-time.After(20 * time.Millisecond):
	}
}

// TestHubSameGroupMultipleConnections 测试同一用户多连接都能收到
func TestHubSameGroupMultipleConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := NewClient("c-1", "p-1", hub, nil)
	c2 := NewClient("c-2", "p-1", hub, nil)
	hub.Register <- c1
	hub.Register <- c2
	waitForClientCount(t, hub, 2)

	hub.SendToParty("p-1", []byte("ping"))

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "ping", string(msg))
		case <-time.After(time.Second):
			t.Fatalf("client %s never received the message", c.ID)
		}
	}
}
