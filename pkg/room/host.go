package room

import (
	"sync"

	"github.com/sirupsen/logrus"
	"scanpoker-server/pkg/game"
)

// Host owns a single room's run loop. Every engine operation and
// snapshot read executes inside the loop, which is the serialization
// boundary for the room's state. After each mutation the resulting
// snapshot is broadcast to the subscribed websocket clients.
type Host struct {
	room    *game.Room
	log     logrus.FieldLogger
	clients map[*Client]bool
	lock    sync.RWMutex

	exec  chan func(*game.Room)
	close chan bool
}

// NewHost creates a host for the room. Open must be called before use.
func NewHost(room *game.Room) *Host {
	return &Host{
		room:    room,
		log:     logrus.WithField("room", room.Code),
		clients: make(map[*Client]bool),
		exec:    make(chan func(*game.Room), 256),
		close:   make(chan bool),
	}
}

// Code returns the room code served by this host
func (h *Host) Code() string {
	return h.room.Code
}

// Open starts the run loop
func (h *Host) Open() {
	go h.runLoop()
}

// Close terminates the run loop. The host must not be used afterwards.
func (h *Host) Close() {
	close(h.close)
}

func (h *Host) runLoop() {
	h.log.Debug("starting room run loop")
	for {
		select {
		case fn := <-h.exec:
			fn(h.room)
		case <-h.close:
			h.log.Debug("terminating room run loop")
			return
		}
	}
}

// Do runs fn inside the run loop and blocks until it returns. After
// Close the call is a no-op rather than a deadlock.
func (h *Host) Do(fn func(*game.Room)) {
	done := make(chan struct{})

	select {
	case h.exec <- func(room *game.Room) {
		defer close(done)
		fn(room)
	}:
	case <-h.close:
		return
	}

	select {
	case <-done:
	case <-h.close:
	}
}

// Update runs fn inside the run loop, then broadcasts the updated
// snapshot to the room's clients before returning
func (h *Host) Update(fn func(*game.Room)) {
	h.Do(func(room *game.Room) {
		fn(room)
		h.broadcast(room.Snapshot())
	})
}

// Snapshot reads the room state through the run loop
func (h *Host) Snapshot() *game.Snapshot {
	var snapshot *game.Snapshot
	h.Do(func(room *game.Room) {
		snapshot = room.Snapshot()
	})

	return snapshot
}

// AddClient subscribes a client and immediately sends it the current
// snapshot. This method must return quickly.
func (h *Host) AddClient(client *Client) {
	h.lock.Lock()
	client.host = h
	h.clients[client] = true
	h.lock.Unlock()

	h.exec <- func(room *game.Room) {
		client.Send(room.Snapshot())
	}
}

// RemoveClient unsubscribes a client and reports whether it was the last
func (h *Host) RemoveClient(client *Client) (lastClient bool) {
	h.lock.Lock()
	delete(h.clients, client)
	remaining := len(h.clients)
	h.lock.Unlock()

	return remaining == 0
}

// Clients returns the clients subscribed at the time of the call
func (h *Host) Clients() []*Client {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}

	return clients
}

// broadcast must only be called from the run loop
func (h *Host) broadcast(snapshot *game.Snapshot) {
	for _, client := range h.Clients() {
		if !client.Send(snapshot) {
			h.log.WithField("client", client.String()).Warn("send buffer full, dropping snapshot")
		}
	}
}
