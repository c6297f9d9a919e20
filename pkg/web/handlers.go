package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/visagekit/visage/pkg/facestate"
	"github.com/visagekit/visage/pkg/hub"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"feed_clients": s.eventHub.ClientCount(),
	})
}

// handleState returns the current tracked facial state.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.source.State())
}

// handleStats returns the watch loop counters.
func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(s.source.Stats())
}

// handleListEvents returns every event name the feed can carry.
func (s *Server) handleListEvents(c *fiber.Ctx) error {
	names := make([]string, 0, len(facestate.AllEvents()))
	for _, e := range facestate.AllEvents() {
		names = append(names, e.Name())
	}
	return c.JSON(names)
}

// handleEventsWS attaches a websocket client to the event feed.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	client := hub.NewClient(s.eventHub, c)
	client.Run()
}
