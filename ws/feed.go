package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FeedHub กระจายเหตุการณ์ lifecycle ของ donation ให้ dashboard ที่ต่อ WS อยู่
// ไม่มี consistency guarantee อะไรนอกจาก "เดี๋ยวก็ได้ state ล่าสุด"
type FeedHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan FeedEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// FeedEvent = สิ่งที่ push ออกไปเมื่อ donation เปลี่ยนสถานะ
type FeedEvent struct {
	DonationID uint   `json:"donationId"`
	Status     string `json:"status"`
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan FeedEvent, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *FeedHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// DonationUpdated - implement services.Notifier
func (h *FeedHub) DonationUpdated(donationID uint, status string) {
	select {
	case h.broadcast <- FeedEvent{DonationID: donationID, Status: status}:
	default:
		// feed เต็ม - ทิ้ง event ได้ dashboard จะ re-fetch เองอยู่แล้ว
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/feed (ต้องผ่าน AuthMiddleware ก่อน)
func (h *FeedHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn

	// client ไม่ต้องส่งอะไรเข้ามา - read loop มีไว้จับตอน disconnect
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
