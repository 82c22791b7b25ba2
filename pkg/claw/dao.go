package claw

import (
	"context"
	"net/url"
)

// DAOService exposes governance: proposals, voting, delegation, the
// treasury, and the timelock queue. The node's governance schema is
// still evolving, so responses are returned as raw objects.
type DAOService struct {
	client *Client
}

// ── Proposals ─────────────────────────────────────────────────────────

// ListProposals lists proposals, optionally filtered by status.
func (s *DAOService) ListProposals(ctx context.Context, status string) (M, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return s.get(ctx, "/api/dao/proposals", q)
}

// GetProposal fetches a single proposal by ID.
func (s *DAOService) GetProposal(ctx context.Context, proposalID string) (M, error) {
	return s.get(ctx, "/api/dao/proposals/"+escapeSegment(proposalID), nil)
}

// CreateProposal submits a new proposal.
func (s *DAOService) CreateProposal(ctx context.Context, body M) (M, error) {
	return s.post(ctx, "/api/dao/proposals", body)
}

// AdvanceProposal moves a proposal to its next lifecycle stage.
func (s *DAOService) AdvanceProposal(ctx context.Context, proposalID string, body M) (M, error) {
	return s.post(ctx, "/api/dao/proposals/"+escapeSegment(proposalID)+"/advance", body)
}

// ── Voting ────────────────────────────────────────────────────────────

// GetVotes returns the votes cast on a proposal.
func (s *DAOService) GetVotes(ctx context.Context, proposalID string) (M, error) {
	return s.get(ctx, "/api/dao/proposals/"+escapeSegment(proposalID)+"/votes", nil)
}

// Vote casts a vote. body carries proposalId/choice/weight plus the
// actor envelope.
func (s *DAOService) Vote(ctx context.Context, body M) (M, error) {
	return s.post(ctx, "/api/dao/vote", body)
}

// ── Delegation ────────────────────────────────────────────────────────

// Delegate delegates voting power to another DID.
func (s *DAOService) Delegate(ctx context.Context, body M) (M, error) {
	return s.post(ctx, "/api/dao/delegate", body)
}

// RevokeDelegation revokes an existing delegation.
func (s *DAOService) RevokeDelegation(ctx context.Context, body M) (M, error) {
	return s.post(ctx, "/api/dao/delegate/revoke", body)
}

// GetDelegations returns delegations involving a DID.
func (s *DAOService) GetDelegations(ctx context.Context, did string) (M, error) {
	return s.get(ctx, "/api/dao/delegations/"+escapeSegment(did), nil)
}

// ── Treasury ──────────────────────────────────────────────────────────

// GetTreasury returns the current treasury state.
func (s *DAOService) GetTreasury(ctx context.Context) (M, error) {
	return s.get(ctx, "/api/dao/treasury", nil)
}

// Deposit deposits into the treasury.
func (s *DAOService) Deposit(ctx context.Context, body M) (M, error) {
	return s.post(ctx, "/api/dao/treasury/deposit", body)
}

// ── Timelock ──────────────────────────────────────────────────────────

// ListTimelock lists queued timelock actions.
func (s *DAOService) ListTimelock(ctx context.Context) (M, error) {
	return s.get(ctx, "/api/dao/timelock", nil)
}

// ExecuteTimelock executes a matured timelock action.
func (s *DAOService) ExecuteTimelock(ctx context.Context, actionID string, body M) (M, error) {
	return s.post(ctx, "/api/dao/timelock/"+escapeSegment(actionID)+"/execute", body)
}

// CancelTimelock cancels a queued timelock action.
func (s *DAOService) CancelTimelock(ctx context.Context, actionID string, body M) (M, error) {
	return s.post(ctx, "/api/dao/timelock/"+escapeSegment(actionID)+"/cancel", body)
}

// ── Params ────────────────────────────────────────────────────────────

// GetParams returns governance parameters and thresholds.
func (s *DAOService) GetParams(ctx context.Context) (M, error) {
	return s.get(ctx, "/api/dao/params", nil)
}

func (s *DAOService) get(ctx context.Context, path string, q url.Values) (M, error) {
	var out M
	if err := s.client.Get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DAOService) post(ctx context.Context, path string, body M) (M, error) {
	var out M
	if err := s.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
