package claw

import (
	"context"
	"net/url"
	"strconv"
)

// ReputationService exposes reputation profiles, reviews, and recording.
type ReputationService struct {
	client *Client
}

// GetProfile returns the reputation profile for a DID.
func (s *ReputationService) GetProfile(ctx context.Context, did string) (*Reputation, error) {
	var out Reputation
	if err := s.client.Get(ctx, "/api/reputation/"+escapeSegment(did), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewsFilter narrows GetReviews. Zero values are omitted.
type ReviewsFilter struct {
	Source string
	Limit  int
	Offset int
}

// GetReviews returns reviews left for a DID.
func (s *ReputationService) GetReviews(ctx context.Context, did string, f ReviewsFilter) (*ReviewsResponse, error) {
	q := url.Values{}
	if f.Source != "" {
		q.Set("source", f.Source)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	var out ReviewsResponse
	if err := s.client.Get(ctx, "/api/reputation/"+escapeSegment(did)+"/reviews", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Record records a reputation event (rating another agent). body carries
// target/dimension/score/ref plus the actor envelope.
func (s *ReputationService) Record(ctx context.Context, body M) (M, error) {
	var out M
	if err := s.client.Post(ctx, "/api/reputation/record", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
