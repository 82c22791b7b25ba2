package claw

import (
	"context"
	"net/url"
	"strconv"
)

// IdentityService exposes DID resolution and capability registration.
type IdentityService struct {
	client *Client
}

// Get fetches the identity document for a DID.
func (s *IdentityService) Get(ctx context.Context, did string) (*Identity, error) {
	var out Identity
	if err := s.client.Get(ctx, "/api/identity/"+escapeSegment(did), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resolve resolves a DID, optionally from a specific source
// ("store" or "log"). An empty source uses the node default.
func (s *IdentityService) Resolve(ctx context.Context, did, source string) (*Identity, error) {
	var q url.Values
	if source != "" {
		q = url.Values{"source": {source}}
	}
	var out Identity
	if err := s.client.Get(ctx, "/api/identity/"+escapeSegment(did), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCapabilities lists the capabilities registered for a DID.
func (s *IdentityService) ListCapabilities(ctx context.Context, did string, limit, offset int) (*CapabilitiesResponse, error) {
	q := url.Values{"did": {did}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var out CapabilitiesResponse
	if err := s.client.Get(ctx, "/api/identity/capabilities", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterCapability registers a new capability credential. body carries
// the credential fields plus the actor envelope (see Session.Envelope).
func (s *IdentityService) RegisterCapability(ctx context.Context, body M) (M, error) {
	var out M
	if err := s.client.Post(ctx, "/api/identity/capabilities", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
