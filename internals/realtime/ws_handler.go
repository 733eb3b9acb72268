package realtime

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the live-update websocket endpoint:
//
//	GET /ws?topics=teacher-notifications-refresh,student-timetable-refresh:<courseId>
//
// The connection is read-only for the client; the server pushes Event frames
// as JSON until the client disconnects.
func RegisterRoutes(app *fiber.App, hub *Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		raw := conn.Query("topics")
		var topics []string
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
		if len(topics) == 0 {
			_ = conn.WriteJSON(fiber.Map{"error": "no topics requested"})
			_ = conn.Close()
			return
		}

		sub := hub.Subscribe(topics)
		defer hub.Unsubscribe(sub)

		// drain client frames so pings/close are processed
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-sub.C():
				if !ok {
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}))
}
