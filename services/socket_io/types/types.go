package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// Connections are keyed by player id, one socket per player.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track player id -> socket connections
	PlayerConnections map[string]*socket.Socket
	mutex             sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Sio_server:        socket.NewServer(nil, nil),
		PlayerConnections: make(map[string]*socket.Socket),
	}
}

func (s *SocketServer) AddConnection(playerID string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerConnections[playerID] = socket
}

// RemoveConnection only removes the entry if it still points at the given
// socket, a reconnect may already have replaced it
func (s *SocketServer) RemoveConnection(playerID string, client *socket.Socket) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if current, ok := s.PlayerConnections[playerID]; ok && current == client {
		delete(s.PlayerConnections, playerID)
		return true
	}
	return false
}

func (s *SocketServer) GetConnection(playerID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.PlayerConnections[playerID]
	return socket, exists
}

func (s *SocketServer) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.PlayerConnections)
}
