package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"uncertainty-go/origerr"
)

// Server publishes origerr records over HTTP and a websocket feed.
type Server struct {
	Hub *Hub

	mu      sync.RWMutex
	events  []string
	encoded []json.RawMessage
}

// NewServer starts the hub; Publish may be called before Start.
func NewServer() *Server {
	s := &Server{
		Hub:     NewHub(),
		encoded: []json.RawMessage{},
	}
	go s.Hub.Run()
	return s
}

// Publish replaces the served records and pushes each one to websocket
// clients as a JSON message. Records JSON cannot carry, such as those with
// infinite axes, are logged and left out; the count published is returned.
func (s *Server) Publish(recs []origerr.Record) int {
	events := make([]string, 0, len(recs))
	encoded := make([]json.RawMessage, 0, len(recs))
	msgs := make([][]byte, 0, len(recs))
	for _, r := range recs {
		b, err := json.Marshal(r)
		if err != nil {
			log.Printf("skip record %s: %v", r.EventID, err)
			continue
		}
		events = append(events, r.EventID)
		encoded = append(encoded, b)
		msgs = append(msgs, b)
	}
	s.mu.Lock()
	s.events, s.encoded = events, encoded
	s.mu.Unlock()
	s.Hub.Replace(msgs)
	return len(msgs)
}

// Handler routes /ws, /origerr and /origerr/{event}.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.Hub, w, r)
	})
	mux.HandleFunc("GET /origerr", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		writeJSON(w, s.encoded)
	})
	mux.HandleFunc("GET /origerr/{event}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("event")
		s.mu.RLock()
		defer s.mu.RUnlock()
		for i, ev := range s.events {
			if ev == id {
				writeJSON(w, s.encoded[i])
				return
			}
		}
		http.NotFound(w, r)
	})
	return mux
}

// Start serves on port until the listener fails.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("HTTP Server listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}
