package server

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade rejects plain HTTP requests on websocket routes.
func (s *Server) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// TripFeedHandler handles GET /api/v1/ws/trips/:id. Connected clients
// receive trip change events (event create/update/delete, membership
// changes) as JSON frames; the feed is server-push only.
func (s *Server) TripFeedHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		tripID, err := strconv.ParseUint(conn.Params("id"), 10, 32)
		if err != nil || tripID == 0 {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid trip ID"}`))
			_ = conn.Close()
			return
		}

		var userID uint
		if v, ok := conn.Locals("userID").(uint); ok {
			userID = v
		}

		client, regErr := s.hub.Register(uint(tripID), userID, conn)
		if regErr != nil {
			log.Printf("WebSocket trip feed: failed to register on trip %d: %v", tripID, regErr)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+regErr.Error()+`"}`))
			_ = conn.Close()
			return
		}

		log.Printf("WebSocket: user %d watching trip %d", userID, tripID)

		go client.WritePump()
		client.ReadPump()
	})
}
