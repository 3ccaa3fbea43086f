// Package server exposes a game session over a local JSON API and streams
// snapshots to websocket subscribers.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/napolitain/ascension/internal/game"
)

const tracerName = "github.com/napolitain/ascension/internal/server"

// Options configures a Server
type Options struct {
	Logger *log.Logger

	// AllowedOrigin restricts websocket upgrades to one Origin. Empty allows
	// any origin.
	AllowedOrigin string
}

type Server struct {
	session *game.Session
	log     *log.Logger
	tracer  trace.Tracer

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu          sync.Mutex
	subscribers map[uint64]chan []byte
}

// New creates a server for the session
func New(session *game.Session, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	allowed := opts.AllowedOrigin
	return &Server{
		session: session,
		log:     opts.Logger,
		tracer:  otel.Tracer(tracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				return allowed == "" || r.Header.Get("Origin") == allowed
			},
		},
		subscribers: make(map[uint64]chan []byte),
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "GET /api/state", s.handleState)
	s.handle(mux, "GET /api/catalog", s.handleCatalog)
	s.handle(mux, "GET /api/catalog/schema", s.handleSchema)
	s.handle(mux, "GET /api/advice", s.handleAdvice)
	s.handle(mux, "POST /api/collect/{resource}", s.handleCollect)
	s.handle(mux, "POST /api/buildings/{id}/purchase", s.handlePurchase)
	s.handle(mux, "POST /api/buildings/{id}/upgrade", s.handleUpgrade)
	s.handle(mux, "POST /api/technologies/{id}/research", s.handleResearch)
	s.handle(mux, "POST /api/chronicle", s.handleChronicle)
	mux.HandleFunc("GET /api/stream", s.handleStream)
	return mux
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(rw http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), pattern, trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", pattern),
		))
		defer span.End()
		h(rw, r.WithContext(ctx))
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

func writeError(rw http.ResponseWriter, status int, msg string) {
	writeJSON(rw, status, errorResponse{Error: msg})
}

// Subscribers returns the number of connected stream clients
func (s *Server) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Broadcast pushes the current snapshot to every stream subscriber. Slow
// subscribers miss frames rather than block the caller.
func (s *Server) Broadcast() {
	s.mu.Lock()
	if len(s.subscribers) == 0 {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	payload, err := json.Marshal(s.session.Snapshot())
	if err != nil {
		s.log.Printf("stream: marshal snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- payload:
		default:
		}
	}
}

func (s *Server) subscribe() (uint64, chan []byte) {
	id := s.nextID.Add(1)
	ch := make(chan []byte, 8)
	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()
	return id, ch
}

func (s *Server) unsubscribe(id uint64) {
	s.mu.Lock()
	delete(s.subscribers, id)
	s.mu.Unlock()
}
