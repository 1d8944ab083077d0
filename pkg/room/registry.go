package room

import (
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"scanpoker-server/pkg/game"
	"scanpoker-server/pkg/token"
)

const roomCodeLength = 6

// ErrRoomNotFound is returned when a code does not match an active room
var ErrRoomNotFound = errors.New("room not found")

// Registry owns the lifecycle of every active room. It is injected into
// the transport layer by the hosting process.
type Registry struct {
	options game.Options
	log     logrus.FieldLogger

	lock  sync.RWMutex
	hosts map[string]*Host
}

// NewRegistry returns an empty registry. Rooms it creates use the given
// options.
func NewRegistry(options game.Options, logger logrus.FieldLogger) *Registry {
	return &Registry{
		options: options,
		log:     logger,
		hosts:   make(map[string]*Host),
	}
}

// Create provisions a room with a unique code and starts its host
func (r *Registry) Create() (*Host, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var code string
	for {
		var err error
		code, err = token.RoomCode(roomCodeLength)
		if err != nil {
			return nil, err
		}

		if _, exists := r.hosts[code]; !exists {
			break
		}
	}

	host := NewHost(game.NewRoom(code, r.options, r.log))
	host.Open()
	r.hosts[code] = host
	r.log.WithField("room", code).Info("room created")

	return host, nil
}

// Get returns the host for the code. Codes are case-insensitive.
func (r *Registry) Get(code string) (*Host, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	host, ok := r.hosts[strings.ToUpper(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return host, nil
}

// Remove shuts down the room's host and forgets the code
func (r *Registry) Remove(code string) {
	r.lock.Lock()
	host, ok := r.hosts[strings.ToUpper(code)]
	delete(r.hosts, strings.ToUpper(code))
	r.lock.Unlock()

	if ok {
		host.Close()
		r.log.WithField("room", code).Info("room removed")
	}
}

// Len returns the number of active rooms
func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.hosts)
}
