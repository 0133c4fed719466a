package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAlertStreamRequiresSession(t *testing.T) {
	c := newTestAPI(t)
	resp := c.do(http.MethodGet, "/v1/alerts/stream", "", nil)
	wantStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestAlertStreamDeliversOwnAlerts(t *testing.T) {
	c := newTestAPI(t)
	number := c.openAccount("Holder", "4321", "100.00")
	other := c.openAccount("Other", "1111", "100.00")
	token := c.login(number, "4321")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/alerts/stream", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("got content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	// The opening comment marks the subscription as live.
	line, err := reader.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, ":") {
		t.Fatalf("expected opening comment, got %q (%v)", line, err)
	}

	// An alert on another account must not reach this stream; one on
	// our own account must.
	r := c.do(http.MethodPost, "/v1/accounts/"+other+"/deposits", c.login(other, "1111"), map[string]any{"amount": "10.00"})
	wantStatus(t, r, http.StatusCreated)
	r.Body.Close()
	r = c.do(http.MethodPost, "/v1/accounts/"+number+"/deposits", token, map[string]any{"amount": "25.00"})
	wantStatus(t, r, http.StatusCreated)
	r.Body.Close()

	var payload string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			payload = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			break
		}
	}
	var al struct {
		Account string `json:"account"`
		Kind    string `json:"kind"`
		Amount  string `json:"amount"`
	}
	if err := json.Unmarshal([]byte(payload), &al); err != nil {
		t.Fatalf("decode alert: %v", err)
	}
	if al.Account != number || al.Kind != "DEPOSIT" || al.Amount != "25.00" {
		t.Fatalf("unexpected alert: %+v", al)
	}
}
