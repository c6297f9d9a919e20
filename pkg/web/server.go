// Package web exposes the tracked facial state and the live event feed
// over HTTP and websockets.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/visagekit/visage/internal/log"
	"github.com/visagekit/visage/pkg/facestate"
	"github.com/visagekit/visage/pkg/hub"
	"github.com/visagekit/visage/pkg/notify"
	"github.com/visagekit/visage/pkg/visage"
)

// StateSource provides read-only snapshots for the HTTP endpoints.
// *visage.Watcher satisfies it.
type StateSource interface {
	State() facestate.TrackedState
	Stats() visage.Stats
}

// Server serves the state snapshot API and the websocket event feed.
type Server struct {
	app    *fiber.App
	port   string
	source StateSource

	eventHub *hub.Hub
	sub      notify.Subscription
}

// NewServer creates a server bridging the notification center into the
// websocket feed.
func NewServer(port string, source StateSource, center *notify.Center) *Server {
	s := &Server{
		port:     port,
		source:   source,
		eventHub: hub.New("events"),
	}

	// Every event the watcher posts goes out on the feed.
	s.sub = center.SubscribeAll(func(e facestate.Event) {
		s.eventHub.BroadcastEvent(e)
	})

	app := fiber.New(fiber.Config{
		AppName:               "visage",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	app.Get("/health", s.handleHealth)

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/stats", s.handleStats)
	api.Get("/events", s.handleListEvents)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start runs the server. Blocks until shutdown.
func (s *Server) Start() error {
	go s.eventHub.Run()
	log.Info("event feed listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server failed", "error", err)
		}
	}()
}

// Shutdown stops the server and detaches from the notification center.
func (s *Server) Shutdown() error {
	s.sub.Cancel()
	return s.app.Shutdown()
}

// EventHub returns the feed hub, for tests and metrics.
func (s *Server) EventHub() *hub.Hub {
	return s.eventHub
}
