package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ritzau/graphsketch/pkg/editor"
	"github.com/ritzau/graphsketch/pkg/graph"
	"github.com/ritzau/graphsketch/pkg/logging"
	"github.com/ritzau/graphsketch/pkg/model"
	"github.com/ritzau/graphsketch/pkg/pubsub"
)

// SessionHeader identifies the editor session on every response
const SessionHeader = "X-Graphsketch-Session"

// Server exposes one editor over HTTP. All access to the controller goes
// through mu, which stands in for the single interaction thread.
type Server struct {
	router    *mux.Router
	publisher *pubsub.SSEPublisher
	session   string

	mu     sync.Mutex
	editor *editor.Controller
}

// NewServer creates a server editing g
func NewServer(g *graph.Graph, opts ...editor.Option) *Server {
	ssePublisher := pubsub.NewSSEPublisher()

	// Viewers only need the current picture
	ssePublisher.ConfigureTopic(pubsub.TopicGraph, pubsub.TopicConfig{
		BufferSize: 1,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
		session:   uuid.New().String(),
	}
	s.editor = editor.New(g, editor.RendererFunc(s.publishSnapshot), opts...)
	s.setupRoutes()

	// Seed the replay buffer so the first viewer gets a picture
	s.editor.Redraw()
	return s
}

// Session returns the server's session ID
func (s *Server) Session() string {
	return s.session
}

// Handler returns the HTTP handler including request logging
func (s *Server) Handler() http.Handler {
	return logging.RequestIDMiddleware(s.router)
}

// ApplySettings changes editor settings while serving. Viewers receive the
// new settings with the redrawn snapshot.
func (s *Server) ApplySettings(settings editor.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.ApplySettings(settings)
}

// Snapshot returns the current editor state
func (s *Server) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Snapshot()
}

// publishSnapshot is the editor's renderer; it runs with mu held
func (s *Server) publishSnapshot(snap *model.Snapshot) {
	if err := s.publisher.Publish(pubsub.TopicGraph, pubsub.EventSnapshot, snap); err != nil {
		logging.Warn("Failed to publish snapshot", "error", err)
	}
}

func (s *Server) setupRoutes() {
	s.router.Use(s.sessionMiddleware)

	// SSE subscription endpoint
	s.router.HandleFunc("/api/subscribe/graph", s.handleSubscribeGraph).Methods("GET")

	s.router.HandleFunc("/api/graph", s.handleGraph).Methods("GET")
	s.router.HandleFunc("/api/graph/incidence", s.handleIncidence).Methods("GET")
	s.router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/api/vertices", s.handleAddVertex).Methods("POST")
	s.router.HandleFunc("/api/vertices/{id:[0-9]+}", s.handleDeleteVertex).Methods("DELETE")
	s.router.HandleFunc("/api/edges", s.handleAddEdge).Methods("POST")
	s.router.HandleFunc("/api/edges/{id:[0-9]+}", s.handleDeleteEdge).Methods("DELETE")
	s.router.HandleFunc("/api/parallel", s.handleParallel).Methods("GET")
	s.router.HandleFunc("/api/hit", s.handleHit).Methods("GET")
	s.router.HandleFunc("/api/mode", s.handleMode).Methods("PUT")
	s.router.HandleFunc("/api/pointer/{action:down|up|move|click}", s.handlePointer).Methods("POST")
}

func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SessionHeader, s.session)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSubscribeGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Initial comment establishes the stream (Safari)
	fmt.Fprintf(w, ": connected\n\n")
	flush(w)

	sub, err := s.publisher.Subscribe(r.Context(), pubsub.TopicGraph)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	ctx := r.Context()
	logging.DebugContext(ctx, "Viewer subscribed", "topic", pubsub.TopicGraph)
	for {
		select {
		case <-ctx.Done():
			logging.DebugContext(ctx, "Viewer disconnected", "topic", pubsub.TopicGraph)
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.WarnContext(ctx, "Error writing SSE event", "error", err)
				return
			}
			flush(w)
		}
	}
}

func flush(w http.ResponseWriter) {
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Start serves on port until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logging.Info("Starting web server", "url", fmt.Sprintf("http://localhost:%d", port), "session", s.session)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.publisher.Close()
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
	}

	logging.Info("Shutting down web server")
	// Close streams first so Shutdown is not held up by open SSE connections
	s.publisher.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return nil
}
