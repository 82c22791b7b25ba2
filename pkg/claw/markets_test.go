package claw_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/clawnet/clawnet-go/pkg/claw"
)

// marketsServer records "METHOD /uri" pairs and answers every endpoint
// with a shape the typed results accept.
func marketsServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.RequestURI)
		json.NewEncoder(w).Encode(map[string]any{
			"listings": []map[string]any{}, "total": 0,
			"listingId": "lst-1", "orderId": "ord-1", "bidId": "bid-1",
			"leaseId": "ls-1", "txHash": "tx-1", "action": "pause",
			"id": "lst-1", "type": "task", "seller": "did:claw:s",
			"title": "T", "status": "open", "createdAt": 1,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestMarketsSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.RawQuery, "limit=5&q=data-analysis&type=task"; got != want {
			t.Errorf("query: got %q, want %q", got, want)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"listings": []map[string]any{
				{"id": "task-1", "type": "task", "seller": "did:claw:s", "title": "Analyze", "status": "open", "createdAt": 1},
			},
			"total": 1,
		})
	}))
	defer srv.Close()

	c := claw.MustNew(srv.URL)
	defer c.Close()

	res, err := c.Markets.Search(context.Background(), url.Values{
		"q": {"data-analysis"}, "type": {"task"}, "limit": {"5"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 1 || res.Listings[0].ID != "task-1" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestTaskMarket_bidFlowPaths(t *testing.T) {
	srv, calls := marketsServer(t)
	c := claw.MustNew(srv.URL)
	defer c.Close()
	ctx := context.Background()
	body := claw.M{"amount": 50}

	if _, err := c.Markets.Tasks.Publish(ctx, body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Tasks.GetBids(ctx, "task-1"); err != nil {
		t.Fatal(err)
	}
	bid, err := c.Markets.Tasks.Bid(ctx, "task-1", body)
	if err != nil {
		t.Fatal(err)
	}
	if bid.BidID != "bid-1" {
		t.Errorf("unexpected bid: %+v", bid)
	}
	if _, err := c.Markets.Tasks.AcceptBid(ctx, "task-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Tasks.Deliver(ctx, "task-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Tasks.Confirm(ctx, "task-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Tasks.Review(ctx, "task-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Tasks.Remove(ctx, "task-1"); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"POST /api/markets/tasks",
		"GET /api/markets/tasks/task-1/bids",
		"POST /api/markets/tasks/task-1/bids",
		"POST /api/markets/tasks/task-1/accept",
		"POST /api/markets/tasks/task-1/deliver",
		"POST /api/markets/tasks/task-1/confirm",
		"POST /api/markets/tasks/task-1/review",
		"DELETE /api/markets/tasks/task-1",
	}
	if len(*calls) != len(want) {
		t.Fatalf("got %d calls: %v", len(*calls), *calls)
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, (*calls)[i], want[i])
		}
	}
}

func TestInfoMarket_purchaseFlowPaths(t *testing.T) {
	srv, calls := marketsServer(t)
	c := claw.MustNew(srv.URL)
	defer c.Close()
	ctx := context.Background()
	body := claw.M{}

	res, err := c.Markets.Info.Purchase(ctx, "lst-1", body)
	if err != nil {
		t.Fatal(err)
	}
	if res.OrderID != "ord-1" {
		t.Errorf("unexpected purchase: %+v", res)
	}
	if _, err := c.Markets.Info.Deliver(ctx, "lst-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Info.Confirm(ctx, "lst-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Info.GetDelivery(ctx, "ord-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Info.Subscribe(ctx, "lst-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Info.Unsubscribe(ctx, "lst-1", body); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"POST /api/markets/info/lst-1/purchase",
		"POST /api/markets/info/lst-1/deliver",
		"POST /api/markets/info/lst-1/confirm",
		"GET /api/markets/info/orders/ord-1/delivery",
		"POST /api/markets/info/lst-1/subscribe",
		"POST /api/markets/info/lst-1/unsubscribe",
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, (*calls)[i], want[i])
		}
	}
}

func TestCapabilityMarket_leasePaths(t *testing.T) {
	srv, calls := marketsServer(t)
	c := claw.MustNew(srv.URL)
	defer c.Close()
	ctx := context.Background()
	body := claw.M{}

	lease, err := c.Markets.Capability.Lease(ctx, "cap-1", body)
	if err != nil {
		t.Fatal(err)
	}
	if lease.LeaseID != "ls-1" {
		t.Errorf("unexpected lease: %+v", lease)
	}
	if _, err := c.Markets.Capability.Invoke(ctx, "cap-1", "ls-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Capability.PauseLease(ctx, "cap-1", "ls-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Capability.ResumeLease(ctx, "cap-1", "ls-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Capability.TerminateLease(ctx, "cap-1", "ls-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Capability.GetLeaseDetail(ctx, "cap-1", "ls-1"); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"POST /api/markets/capabilities/cap-1/lease",
		"POST /api/markets/capabilities/cap-1/leases/ls-1/invoke",
		"POST /api/markets/capabilities/cap-1/leases/ls-1/pause",
		"POST /api/markets/capabilities/cap-1/leases/ls-1/resume",
		"POST /api/markets/capabilities/cap-1/leases/ls-1/terminate",
		"GET /api/markets/capabilities/cap-1/leases/ls-1",
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, (*calls)[i], want[i])
		}
	}
}

func TestMarketDisputes_paths(t *testing.T) {
	srv, calls := marketsServer(t)
	c := claw.MustNew(srv.URL)
	defer c.Close()
	ctx := context.Background()
	body := claw.M{"reason": "not delivered"}

	if _, err := c.Markets.Disputes.Open(ctx, claw.MarketTasks, "task-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Disputes.Respond(ctx, claw.MarketTasks, "task-1", "dsp-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Markets.Disputes.Resolve(ctx, claw.MarketInfo, "lst-1", "dsp-2", body); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"POST /api/markets/tasks/task-1/dispute",
		"POST /api/markets/tasks/task-1/dispute/dsp-1/respond",
		"POST /api/markets/info/lst-1/dispute/dsp-2/resolve",
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, (*calls)[i], want[i])
		}
	}
}
