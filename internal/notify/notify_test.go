package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skyflipper/engine/internal/store"
)

type captureSink struct {
	got []store.FlipDecision
	err error
}

func (c *captureSink) Notify(d store.FlipDecision) error {
	c.got = append(c.got, d)
	return c.err
}

func TestFanoutRespectsDisplayFilter(t *testing.T) {
	sink := &captureSink{}

	suppressed := store.FlipDecision{UUID: "u1", Tier: "COMMON", Notify: false}
	Fanout([]Sink{sink}, suppressed)
	if len(sink.got) != 0 {
		t.Fatal("expected a suppressed decision to reach no sinks")
	}

	visible := store.FlipDecision{UUID: "u2", Tier: "LEGENDARY", Notify: true}
	Fanout([]Sink{sink}, visible)
	if len(sink.got) != 1 || sink.got[0].UUID != "u2" {
		t.Fatalf("got %+v, want the visible decision delivered once", sink.got)
	}
}

func TestWebsocketSinkBroadcast(t *testing.T) {
	sink := NewWebsocketSink("")
	srv := httptest.NewServer(http.HandlerFunc(sink.handleFeed))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	decision := store.FlipDecision{
		UUID:        "a1b2c3",
		ItemName:    "Midas Sword",
		Tier:        "LEGENDARY",
		StartingBid: 1000000,
		FairPrice:   2000000,
		Margin:      1000000,
		Notify:      true,
	}

	// The register happens in the upgrade handler; give it a moment before
	// broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for {
		sink.mu.Lock()
		n := len(sink.clients)
		sink.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := sink.Notify(decision); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got store.FlipDecision
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.UUID != "a1b2c3" || got.Margin != 1000000 {
		t.Errorf("got %+v", got)
	}
}
