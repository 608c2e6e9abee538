package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mlm_platform/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

func TestFeedPublishNoClients(t *testing.T) {
	f := NewFeed()
	// must not panic or block with nobody listening
	f.Publish(domain.Transaction{UserID: "123456"})
	if n := f.ClientCount(); n != 0 {
		t.Errorf("client count = %d, want 0", n)
	}
}

func TestFeedBroadcast(t *testing.T) {
	f := NewFeed()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		f.Attach(conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// wait for the server side to register the client
	deadline := time.Now().Add(2 * time.Second)
	for f.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never attached")
		}
		time.Sleep(10 * time.Millisecond)
	}

	entry := domain.Transaction{
		UserID: "123456",
		Type:   domain.TxnDebit,
		Amount: decimal.NewFromInt(500),
		Source: domain.SourcePlanDeposit,
	}
	f.Publish(entry)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var payload struct {
		Type        string             `json:"type"`
		Transaction domain.Transaction `json:"transaction"`
	}
	if err := json.Unmarshal(msg, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Type != "transaction" {
		t.Errorf("type = %q, want transaction", payload.Type)
	}
	if payload.Transaction.UserID != "123456" {
		t.Errorf("user_id = %q, want 123456", payload.Transaction.UserID)
	}
}
