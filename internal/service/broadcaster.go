package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToConversation(conversationID string, msgType string, payload interface{})
	DisconnectConversation(conversationID string)
}
