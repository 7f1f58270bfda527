package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
)

// debounceWindow coalesces editor write bursts into one rebuild.
const debounceWindow = 300 * time.Millisecond

// ReloadHub watches the catalog directory and notifies connected
// browsers over websocket when pages have been regenerated.
type ReloadHub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewReloadHub creates an empty hub.
func NewReloadHub(allowAll bool) *ReloadHub {
	h := &ReloadHub{
		clients: make(map[*websocket.Conn]bool),
	}
	if allowAll {
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return h
}

// Handler returns the /ws/reload websocket endpoint.
func (h *ReloadHub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("reload upgrade: %v", err)
			return
		}

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()

		// Drain reads until the client goes away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					h.drop(conn)
					return
				}
			}
		}()
	}
}

func (h *ReloadHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// Broadcast tells every connected client to reload.
func (h *ReloadHub) Broadcast() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			h.drop(conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *ReloadHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Watch rebuilds via onChange and broadcasts whenever a file under dir
// changes. Blocks until stop is closed.
func (h *ReloadHub) Watch(dir string, onChange func() error, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := onChange(); err != nil {
				log.Printf("catalog rebuild: %v", err)
				continue
			}
			h.Broadcast()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog watch: %v", err)
		case <-stop:
			return nil
		}
	}
}
