package websocket

import (
	"context"
	"encoding/json"
	"time"

	"docqa-be/internal/pkg/logger"
	"docqa-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Frame types sent to the client during one streamed turn. Every frame of a
// turn carries the same messageId so concurrent turns on one connection stay
// distinguishable.
const (
	frameTypeMessage = "message" // echo of the user turn
	frameTypeStart   = "start"
	frameTypeChunk   = "chunk"
	frameTypeEnd     = "end" // content holds the full accumulated answer
	frameTypeError   = "error"
)

type chatStreamRequest struct {
	SessionId uuid.UUID `json:"session_id"`
	Question  string    `json:"question"`
}

type chatStreamFrame struct {
	Type      string `json:"type"`
	Role      string `json:"role,omitempty"`
	Content   string `json:"content,omitempty"`
	MessageId string `json:"messageId"`
}

type ChatHandler struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatHandler(chatService service.IChatService, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      log,
	}
}

// client serializes all writes to one connection through the send channel.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) enqueue(frame chatStreamFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
		// Slow consumer; drop the frame rather than block the stream.
	}
}

// ServeChat owns the connection until the peer disconnects. Each inbound
// request runs its streamed turn in its own goroutine; the connection
// context cancels in-flight generation when the peer goes away.
func (h *ChatHandler) ServeChat(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &client{conn: conn, send: make(chan []byte, 256)}

	go c.writePump()

	// In-flight stream goroutines may still enqueue after the read loop
	// exits, so the send channel is never closed; closing the connection
	// makes the write pump drain and stop instead.
	defer func() {
		cancel()
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("ChatHandler", "Websocket read failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
			return
		}

		var req chatStreamRequest
		if err := json.Unmarshal(payload, &req); err != nil || req.SessionId == uuid.Nil {
			c.enqueue(chatStreamFrame{
				Type:      frameTypeError,
				Content:   "invalid request",
				MessageId: uuid.NewString(),
			})
			continue
		}

		go h.streamTurn(ctx, c, req)
	}
}

func (h *ChatHandler) streamTurn(ctx context.Context, c *client, req chatStreamRequest) {
	messageId := uuid.NewString()

	c.enqueue(chatStreamFrame{
		Type:      frameTypeMessage,
		Role:      "user",
		Content:   req.Question,
		MessageId: messageId,
	})
	c.enqueue(chatStreamFrame{
		Type:      frameTypeStart,
		Role:      "assistant",
		MessageId: messageId,
	})

	h.chatService.SendChatStream(ctx, req.SessionId, req.Question,
		func(chunk string) {
			c.enqueue(chatStreamFrame{
				Type:      frameTypeChunk,
				Role:      "assistant",
				Content:   chunk,
				MessageId: messageId,
			})
		},
		func(full string) {
			c.enqueue(chatStreamFrame{
				Type:      frameTypeEnd,
				Role:      "assistant",
				Content:   full,
				MessageId: messageId,
			})
		},
		func(err error) {
			h.logger.Error("ChatHandler", "Streamed turn failed", map[string]interface{}{
				"session_id": req.SessionId,
				"error":      err.Error(),
			})
			c.enqueue(chatStreamFrame{
				Type:      frameTypeError,
				Content:   "Failed to generate a response. Please try again.",
				MessageId: messageId,
			})
		},
	)
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
