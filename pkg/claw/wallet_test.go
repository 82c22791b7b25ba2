package claw_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clawnet/clawnet-go/pkg/claw"
)

func TestWalletGetHistory_filter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.RawQuery, "did=did%3Aclaw%3Aa&limit=20&type=transfer"; got != want {
			t.Errorf("query: got %q, want %q", got, want)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"transactions": []map[string]any{
				{"txHash": "tx-1", "from": "did:claw:a", "to": "did:claw:b", "amount": 5, "status": "confirmed", "timestamp": 1},
			},
			"total":   1,
			"hasMore": false,
		})
	}))
	defer srv.Close()

	c := claw.MustNew(srv.URL)
	defer c.Close()

	hist, err := c.Wallet.GetHistory(context.Background(), claw.HistoryFilter{
		DID:   "did:claw:a",
		Limit: 20,
		Type:  "transfer",
	})
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if hist.Total != 1 || hist.HasMore || hist.Transactions[0].TxHash != "tx-1" {
		t.Errorf("unexpected history: %+v", hist)
	}
}

func TestWalletTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/wallet/transfer" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["to"] != "did:claw:b" || body["did"] != "did:claw:a" {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"txHash": "tx-9", "from": "did:claw:a", "to": "did:claw:b",
			"amount": 50, "status": "confirmed", "timestamp": 1000,
		})
	}))
	defer srv.Close()

	c := claw.MustNew(srv.URL)
	defer c.Close()

	sess := claw.NewSession("did:claw:a", "pw")
	res, err := c.Wallet.Transfer(context.Background(), sess.Envelope(claw.M{
		"to":     "did:claw:b",
		"amount": 50,
	}))
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if res.TxHash != "tx-9" || res.Amount != 50 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestWalletEscrowLifecyclePaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.RequestURI)
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{
				"id": "esc-1", "depositor": "did:claw:a", "beneficiary": "did:claw:b",
				"amount": 100, "funded": 100, "released": 0, "status": "funded", "createdAt": 1,
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{"escrowId": "esc-1", "txHash": "tx-e"})
		}
	}))
	defer srv.Close()

	c := claw.MustNew(srv.URL)
	defer c.Close()
	ctx := context.Background()
	body := claw.M{"did": "did:claw:a"}

	if _, err := c.Wallet.CreateEscrow(ctx, body); err != nil {
		t.Fatalf("CreateEscrow: %v", err)
	}
	esc, err := c.Wallet.GetEscrow(ctx, "esc-1")
	if err != nil {
		t.Fatalf("GetEscrow: %v", err)
	}
	if esc.Status != "funded" || esc.Amount != 100 {
		t.Errorf("unexpected escrow: %+v", esc)
	}
	if _, err := c.Wallet.FundEscrow(ctx, "esc-1", body); err != nil {
		t.Fatalf("FundEscrow: %v", err)
	}
	if _, err := c.Wallet.ReleaseEscrow(ctx, "esc-1", body); err != nil {
		t.Fatalf("ReleaseEscrow: %v", err)
	}
	if _, err := c.Wallet.RefundEscrow(ctx, "esc-1", body); err != nil {
		t.Fatalf("RefundEscrow: %v", err)
	}
	if _, err := c.Wallet.ExpireEscrow(ctx, "esc-1", body); err != nil {
		t.Fatalf("ExpireEscrow: %v", err)
	}

	want := []string{
		"POST /api/wallet/escrow",
		"GET /api/wallet/escrow/esc-1",
		"POST /api/wallet/escrow/esc-1/fund",
		"POST /api/wallet/escrow/esc-1/release",
		"POST /api/wallet/escrow/esc-1/refund",
		"POST /api/wallet/escrow/esc-1/expire",
	}
	if len(paths) != len(want) {
		t.Fatalf("got %d requests, want %d: %v", len(paths), len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("request %d: got %q, want %q", i, paths[i], want[i])
		}
	}
}
