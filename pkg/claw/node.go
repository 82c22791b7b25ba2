package claw

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// NodeService exposes node status, peers, config, and the sync wait.
type NodeService struct {
	client *Client
}

// GetStatus returns the node's self-reported state (DID, sync flag,
// block height, peer count).
func (s *NodeService) GetStatus(ctx context.Context) (*NodeStatus, error) {
	var out NodeStatus
	if err := s.client.Get(ctx, "/api/node/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPeers lists connected peers. Zero limit/offset are omitted.
func (s *NodeService) GetPeers(ctx context.Context, limit, offset int) (*PeersResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var out PeersResponse
	if err := s.client.Get(ctx, "/api/node/peers", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetConfig returns the node configuration.
func (s *NodeService) GetConfig(ctx context.Context) (M, error) {
	var out M
	if err := s.client.Get(ctx, "/api/node/config", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WaitForSync polls GetStatus every interval until the node reports
// Synced, returning the last observed status. When timeout elapses first
// it returns a *SyncTimeoutError. At least one status fetch is always
// made, and a node that is already synced returns without sleeping.
// Cancel ctx to abandon the wait between polls or mid-request.
func (s *NodeService) WaitForSync(ctx context.Context, interval, timeout time.Duration) (*NodeStatus, error) {
	deadline := time.Now().Add(timeout)
	for {
		status, err := s.GetStatus(ctx)
		if err != nil {
			return nil, err
		}
		if status.Synced {
			return status, nil
		}
		if !time.Now().Before(deadline) {
			return nil, &SyncTimeoutError{Timeout: timeout}
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
