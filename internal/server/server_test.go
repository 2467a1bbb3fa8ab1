package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/latticeforge/kbest/cube"
	"github.com/latticeforge/kbest/hgraph"
)

func axiomHypergraph() (*hgraph.Hypergraph, *hgraph.InMemorySymbolTable) {
	symtab := hgraph.NewInMemorySymbolTable()
	symtab.AddWord(10, "a")

	goal := &hgraph.Node{ID: "G", I: 0, J: 1}
	goal.Edges = []*hgraph.Hyperedge{{
		Rule:               &hgraph.Rule{LHS: 1, Target: []int{10}, Source: []int{10}},
		BestDerivationCost: 0,
	}}
	return &hgraph.Hypergraph{Goal: goal, Nodes: map[string]*hgraph.Node{"G": goal}}, symtab
}

func TestHealthz(t *testing.T) {
	hg, symtab := axiomHypergraph()
	srv := New(hg, symtab, nil, cube.Options{}, nil)

	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestWebsocketDeliversHypotheses(t *testing.T) {
	hg, symtab := axiomHypergraph()
	srv := New(hg, symtab, nil, cube.Options{}, nil)

	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?n=1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	if !strings.Contains(string(msg), "\"line\"") {
		t.Fatalf("expected a line payload, got %s", msg)
	}
}
