package server

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestReloadHubBroadcast(t *testing.T) {
	hub := NewReloadHub(true)
	ts := httptest.NewServer(hub.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer conn.Close()

	// Wait for the server side to register the client.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading broadcast: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q, want reload", msg)
	}
}

func TestWatchNotifiesConnectedBrowser(t *testing.T) {
	hub := NewReloadHub(true)
	ts := httptest.NewServer(hub.Handler())
	defer ts.Close()

	dir := t.TempDir()
	stop := make(chan struct{})
	defer close(stop)

	var rebuilds atomic.Int32
	go hub.Watch(dir, func() error {
		rebuilds.Add(1)
		return nil
	}, stop)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// A catalog edit must rebuild and then reach the browser.
	path := filepath.Join(dir, "door.yaml")
	if err := os.WriteFile(path, []byte("name: d4rl_adroit_door\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading reload notification: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q, want reload", msg)
	}
	if rebuilds.Load() == 0 {
		t.Error("onChange was never called before the broadcast")
	}
}

func TestReloadHubDropsClosedClients(t *testing.T) {
	hub := NewReloadHub(true)
	ts := httptest.NewServer(hub.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed client never dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
