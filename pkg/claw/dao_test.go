package claw_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clawnet/clawnet-go/pkg/claw"
)

func daoServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.RequestURI)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestDAO_proposalAndVotePaths(t *testing.T) {
	srv, calls := daoServer(t)
	c := claw.MustNew(srv.URL)
	defer c.Close()
	ctx := context.Background()
	body := claw.M{"did": "did:claw:voter"}

	if _, err := c.DAO.ListProposals(ctx, "voting"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.ListProposals(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.CreateProposal(ctx, body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.GetProposal(ctx, "prop-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.AdvanceProposal(ctx, "prop-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.GetVotes(ctx, "prop-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.Vote(ctx, body); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"GET /api/dao/proposals?status=voting",
		"GET /api/dao/proposals",
		"POST /api/dao/proposals",
		"GET /api/dao/proposals/prop-1",
		"POST /api/dao/proposals/prop-1/advance",
		"GET /api/dao/proposals/prop-1/votes",
		"POST /api/dao/vote",
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

func TestDAO_delegationTreasuryTimelockPaths(t *testing.T) {
	srv, calls := daoServer(t)
	c := claw.MustNew(srv.URL)
	defer c.Close()
	ctx := context.Background()
	body := claw.M{"did": "did:claw:voter"}

	if _, err := c.DAO.Delegate(ctx, body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.RevokeDelegation(ctx, body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.GetDelegations(ctx, "did:claw:voter"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.GetTreasury(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.Deposit(ctx, body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.ListTimelock(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.ExecuteTimelock(ctx, "tl-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.CancelTimelock(ctx, "tl-1", body); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DAO.GetParams(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"POST /api/dao/delegate",
		"POST /api/dao/delegate/revoke",
		"GET /api/dao/delegations/did%3Aclaw%3Avoter",
		"GET /api/dao/treasury",
		"POST /api/dao/treasury/deposit",
		"GET /api/dao/timelock",
		"POST /api/dao/timelock/tl-1/execute",
		"POST /api/dao/timelock/tl-1/cancel",
		"GET /api/dao/params",
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
