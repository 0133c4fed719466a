package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// Exercises a running campusbank-api end to end: open two accounts,
// log in, transfer between them and check that money was conserved.
func main() {
	base := os.Getenv("CAMPUSBANK_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 5 * time.Second}

	numA := openAccount(client, base, "Smoke Sender", "1111", "500.00")
	numB := openAccount(client, base, "Smoke Receiver", "2222", "100.00")

	token := login(client, base, numA, "1111")

	// 200.00 of 500.00 stays under the confirmation threshold, so the
	// transfer settles immediately.
	transfer := map[string]any{
		"from":   numA,
		"to":     numB,
		"amount": "200.00",
		"pin":    "1111",
	}
	var entry struct {
		Balance string `json:"balance"`
	}
	doJSON(client, http.MethodPost, base+"/v1/transfers", token, transfer, http.StatusCreated, &entry)

	balA := balance(client, base, numA, token)
	tokenB := login(client, base, numB, "2222")
	balB := balance(client, base, numB, tokenB)

	if balA != "300.00" || balB != "300.00" {
		log.Fatalf("unexpected balances after transfer: A=%s B=%s", balA, balB)
	}

	fmt.Printf("✅ api smoke test passed: accounts=%s,%s\n", numA, numB)
}

func openAccount(client *http.Client, base, holder, pin, initial string) string {
	req := map[string]any{
		"holder":          holder,
		"pin":             pin,
		"initial_deposit": initial,
	}
	var resp struct {
		Number string `json:"number"`
	}
	doJSON(client, http.MethodPost, base+"/v1/accounts", "", req, http.StatusCreated, &resp)
	return resp.Number
}

func login(client *http.Client, base, number, pin string) string {
	req := map[string]any{"number": number, "pin": pin}
	var resp struct {
		Token string `json:"token"`
	}
	doJSON(client, http.MethodPost, base+"/v1/sessions", "", req, http.StatusOK, &resp)
	return resp.Token
}

func balance(client *http.Client, base, number, token string) string {
	var resp struct {
		Balance string `json:"balance"`
	}
	doJSON(client, http.MethodGet, base+"/v1/accounts/"+number, token, nil, http.StatusOK, &resp)
	return resp.Balance
}

func doJSON(client *http.Client, method, url, token string, body any, wantStatus int, out any) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("marshal %s: %v", url, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Fatalf("request %s: %v", url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: status %d, want %d", method, url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("decode %s: %v", url, err)
		}
	}
}
