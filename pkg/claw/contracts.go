package claw

import (
	"context"
	"net/url"
)

// ContractsService manages service contracts: creation, signatures,
// funding, milestones, disputes, and settlement.
type ContractsService struct {
	client *Client
}

// List returns contracts matching the given filters (client, provider,
// status, limit, offset).
func (s *ContractsService) List(ctx context.Context, params url.Values) (*ContractsResponse, error) {
	var out ContractsResponse
	if err := s.client.Get(ctx, "/api/contracts", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a contract by ID.
func (s *ContractsService) Get(ctx context.Context, contractID string) (*Contract, error) {
	var out Contract
	if err := s.client.Get(ctx, "/api/contracts/"+escapeSegment(contractID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a new service contract. body carries provider, terms,
// payment, milestones, plus the actor envelope.
func (s *ContractsService) Create(ctx context.Context, body M) (*CreateContractResult, error) {
	var out CreateContractResult
	if err := s.client.Post(ctx, "/api/contracts", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sign signs a contract as one of its parties.
func (s *ContractsService) Sign(ctx context.Context, contractID string, body M) (*TxResult, error) {
	return s.action(ctx, contractID, "sign", body)
}

// Fund moves the contract amount into escrow.
func (s *ContractsService) Fund(ctx context.Context, contractID string, body M) (*TxResult, error) {
	return s.action(ctx, contractID, "fund", body)
}

// Complete marks the contract complete.
func (s *ContractsService) Complete(ctx context.Context, contractID string, body M) (*TxResult, error) {
	return s.action(ctx, contractID, "complete", body)
}

// SubmitMilestone submits a milestone deliverable.
func (s *ContractsService) SubmitMilestone(ctx context.Context, contractID, milestoneID string, body M) (*TxResult, error) {
	return s.milestoneAction(ctx, contractID, milestoneID, "submit", body)
}

// ApproveMilestone approves a submitted milestone, releasing its share.
func (s *ContractsService) ApproveMilestone(ctx context.Context, contractID, milestoneID string, body M) (*TxResult, error) {
	return s.milestoneAction(ctx, contractID, milestoneID, "approve", body)
}

// RejectMilestone rejects a submitted milestone.
func (s *ContractsService) RejectMilestone(ctx context.Context, contractID, milestoneID string, body M) (*TxResult, error) {
	return s.milestoneAction(ctx, contractID, milestoneID, "reject", body)
}

// OpenDispute opens a dispute on the contract.
func (s *ContractsService) OpenDispute(ctx context.Context, contractID string, body M) (*TxResult, error) {
	return s.action(ctx, contractID, "dispute", body)
}

// ResolveDispute resolves an open contract dispute.
func (s *ContractsService) ResolveDispute(ctx context.Context, contractID string, body M) (*TxResult, error) {
	return s.action(ctx, contractID, "dispute/resolve", body)
}

// Settlement executes the final settlement.
func (s *ContractsService) Settlement(ctx context.Context, contractID string, body M) (*TxResult, error) {
	return s.action(ctx, contractID, "settlement", body)
}

func (s *ContractsService) action(ctx context.Context, contractID, action string, body M) (*TxResult, error) {
	var out TxResult
	path := "/api/contracts/" + escapeSegment(contractID) + "/" + action
	if err := s.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ContractsService) milestoneAction(ctx context.Context, contractID, milestoneID, action string, body M) (*TxResult, error) {
	var out TxResult
	path := "/api/contracts/" + escapeSegment(contractID) +
		"/milestones/" + escapeSegment(milestoneID) + "/" + action
	if err := s.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
