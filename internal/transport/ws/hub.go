package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgTotalsUpdate          MessageType = "totals_update"
	MsgConversationCompleted MessageType = "conversation_completed"
	MsgConversationRestarted MessageType = "conversation_restarted"
	MsgError                 MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for live conversation feeds. A single
// conversation can have several viewers (the rep's tablet and a chart
// display), so connections are held per conversation as a set.
type Hub struct {
	// Conversation -> connections
	conns map[string]map[*Connection]bool

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	ConversationID string
	Send           chan []byte
	Hub            *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	ConversationID string
	Message        *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.ConversationID] == nil {
				h.conns[conn.ConversationID] = make(map[*Connection]bool)
			}
			h.conns[conn.ConversationID][conn] = true
			log.Printf("Viewer connected to conversation %s", conn.ConversationID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if viewers, ok := h.conns[conn.ConversationID]; ok && viewers[conn] {
				delete(viewers, conn)
				close(conn.Send)
				if len(viewers) == 0 {
					delete(h.conns, conn.ConversationID)
				}
				log.Printf("Viewer disconnected from conversation %s", conn.ConversationID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.ConversationID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToConversation sends a message to every viewer of a conversation
// (implements service.Broadcaster)
func (h *Hub) BroadcastToConversation(conversationID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ConversationID: conversationID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectConversation closes all viewers of a conversation (implements
// service.Broadcaster)
func (h *Hub) DisconnectConversation(conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[conversationID] {
		close(conn.Send)
		delete(h.conns[conversationID], conn)
	}
	delete(h.conns, conversationID)
}
