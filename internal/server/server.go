// Package server exposes extraction as a long-running HTTP+websocket
// service, for "kbest serve". Each accepted connection gets its own
// cube.Extractor, satisfying the single-threaded extractor's requirement
// that concurrent extractions use disjoint instances.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
)

// Server serves one hypergraph's extraction over HTTP.
type Server struct {
	hg       *hgraph.Hypergraph
	symtab   hgraph.SymbolTable
	features []hgraph.FeatureFunction
	opts     cube.Options
	newHooks func() *cube.Hooks

	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New builds a Server for hg. newHooks is called once per accepted
// connection so every Extractor gets its own cube.Hooks value (the hooks
// carry per-extraction span state and must not be shared across the
// concurrent extractions this server runs); nil disables telemetry.
func New(hg *hgraph.Hypergraph, symtab hgraph.SymbolTable, features []hgraph.FeatureFunction, opts cube.Options, newHooks func() *cube.Hooks) *Server {
	s := &Server{
		hg:       hg,
		symtab:   symtab,
		features: features,
		opts:     opts,
		newHooks: newHooks,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/ws", s.handleWS)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// wsConsumer adapts a websocket connection to cube.Consumer: one JSON text
// frame per delivered line, a close frame on finish.
type wsConsumer struct {
	conn *websocket.Conn
}

func (c *wsConsumer) Deliver(line string) error {
	payload, err := json.Marshal(struct {
		Line string `json:"line"`
	}{Line: line})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *wsConsumer) Finish() {
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	n := 10
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	sentID := -1
	if v := r.URL.Query().Get("sent_id"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			sentID = parsed
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "request_id", reqID, "error", err)
		return
	}

	ex := cube.NewExtractor(s.opts, s.symtab, s.features)
	if s.newHooks != nil {
		ex.Hooks = s.newHooks()
	}

	slog.Info("extraction started", "request_id", reqID, "n", n, "sent_id", sentID)
	if err := ex.Extract(s.hg, n, sentID, &wsConsumer{conn: conn}); err != nil {
		slog.Error("extraction failed", "request_id", reqID, "error", err)
	}
}

// ListenAndServe runs s on addr until the process is killed.
func ListenAndServe(addr string, s *Server) error {
	return http.ListenAndServe(addr, s)
}
