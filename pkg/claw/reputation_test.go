package claw_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clawnet/clawnet-go/pkg/claw"
)

func TestReputation_getProfile(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(`{"did":"did:claw:z6MkAgent","score":87.5,"totalTransactions":12,
			"successRate":0.95,"dimensions":{"delivery":90,"quality":85}}`))
	}))
	defer srv.Close()

	c := claw.MustNew(srv.URL)
	defer c.Close()

	rep, err := c.Reputation.GetProfile(context.Background(), "did:claw:z6MkAgent")
	if err != nil {
		t.Fatal(err)
	}
	if want := "/api/reputation/did%3Aclaw%3Az6MkAgent"; gotURI != want {
		t.Errorf("got URI %q, want %q", gotURI, want)
	}
	if rep.Score != 87.5 || rep.TotalTransactions != 12 || rep.SuccessRate != 0.95 {
		t.Errorf("unexpected profile: %+v", rep)
	}
	if rep.Dimensions.Quality == nil || *rep.Dimensions.Quality != 85 {
		t.Errorf("unexpected dimensions: %+v", rep.Dimensions)
	}
}

func TestReputation_getReviewsFilter(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(`{"reviews":[],"total":0}`))
	}))
	defer srv.Close()

	c := claw.MustNew(srv.URL)
	defer c.Close()

	_, err := c.Reputation.GetReviews(context.Background(), "did:claw:a", claw.ReviewsFilter{
		Source: "contracts",
		Limit:  5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := "/api/reputation/did%3Aclaw%3Aa/reviews?limit=5&source=contracts"; gotURI != want {
		t.Errorf("got URI %q, want %q", gotURI, want)
	}
}

func TestReputation_record(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.Method + " " + r.RequestURI
		w.Write([]byte(`{"txHash":"tx-9"}`))
	}))
	defer srv.Close()

	c := claw.MustNew(srv.URL)
	defer c.Close()

	sess := claw.NewSession("did:claw:rater", "pw")
	out, err := c.Reputation.Record(context.Background(), sess.Envelope(claw.M{
		"target":    "did:claw:provider",
		"dimension": "quality",
		"score":     92,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if gotURI != "POST /api/reputation/record" {
		t.Errorf("got %q", gotURI)
	}
	if out["txHash"] != "tx-9" {
		t.Errorf("unexpected result: %v", out)
	}
}
