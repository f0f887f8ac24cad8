package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func startTestServer(t *testing.T) *NatsServer {
	t.Helper()

	srv, err := NewNatsServer(WithStartTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("creating nats server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("server error: %v", err)
		}
	})

	// Start connects the internal client once the server is ready.
	deadline := time.Now().Add(5 * time.Second)
	for srv.client() == nil {
		if time.Now().After(deadline) {
			t.Fatal("nats server never became ready")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return srv
}

func TestNatsServerPublishSubscribe(t *testing.T) {
	srv := startTestServer(t)

	got := make(chan string, 1)
	unsub, err := srv.Subscribe("player-abc", func(data []byte) {
		got <- string(data)
	})
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer unsub()

	if err := srv.Publish("player-abc", []byte("hello")); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	select {
	case msg := <-got:
		testutil.AssertEqual(t, "message", msg, "hello")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestPlayerChannelRoundTrip(t *testing.T) {
	srv := startTestServer(t)
	ch := NewPlayerChannel(srv)

	got := make(chan string, 1)
	unsub, err := ch.SubscribeCharacter("char-1", func(message string) {
		got <- message
	})
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer unsub()

	if err := ch.PublishToCharacter("char-1", "you hear a noise"); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	select {
	case msg := <-got:
		testutil.AssertEqual(t, "message", msg, "you hear a noise")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
