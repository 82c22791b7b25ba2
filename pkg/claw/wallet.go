package claw

import (
	"context"
	"net/url"
	"strconv"
)

// WalletService exposes balance, transfers, history, and the escrow
// lifecycle.
type WalletService struct {
	client *Client
}

// GetBalance returns the wallet balance. Empty did and address default
// to this node's own wallet.
func (s *WalletService) GetBalance(ctx context.Context, did, address string) (*Balance, error) {
	q := url.Values{}
	if did != "" {
		q.Set("did", did)
	}
	if address != "" {
		q.Set("address", address)
	}
	var out Balance
	if err := s.client.Get(ctx, "/api/wallet/balance", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transfer sends tokens to another agent. body carries to/amount/fee/memo
// plus the actor envelope.
func (s *WalletService) Transfer(ctx context.Context, body M) (*TransferResult, error) {
	var out TransferResult
	if err := s.client.Post(ctx, "/api/wallet/transfer", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HistoryFilter narrows GetHistory. Zero values are omitted.
type HistoryFilter struct {
	DID    string
	Limit  int
	Offset int
	Type   string
}

// GetHistory returns the transaction history page selected by f.
func (s *WalletService) GetHistory(ctx context.Context, f HistoryFilter) (*HistoryResponse, error) {
	q := url.Values{}
	if f.DID != "" {
		q.Set("did", f.DID)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	var out HistoryResponse
	if err := s.client.Get(ctx, "/api/wallet/history", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEscrow opens a new escrow account.
func (s *WalletService) CreateEscrow(ctx context.Context, body M) (M, error) {
	var out M
	if err := s.client.Post(ctx, "/api/wallet/escrow", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEscrow fetches an escrow record by ID.
func (s *WalletService) GetEscrow(ctx context.Context, escrowID string) (*Escrow, error) {
	var out Escrow
	if err := s.client.Get(ctx, "/api/wallet/escrow/"+escapeSegment(escrowID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FundEscrow adds funds to an escrow.
func (s *WalletService) FundEscrow(ctx context.Context, escrowID string, body M) (M, error) {
	return s.escrowAction(ctx, escrowID, "fund", body)
}

// ReleaseEscrow releases escrow funds to the beneficiary.
func (s *WalletService) ReleaseEscrow(ctx context.Context, escrowID string, body M) (M, error) {
	return s.escrowAction(ctx, escrowID, "release", body)
}

// RefundEscrow refunds the escrow to the depositor.
func (s *WalletService) RefundEscrow(ctx context.Context, escrowID string, body M) (M, error) {
	return s.escrowAction(ctx, escrowID, "refund", body)
}

// ExpireEscrow expires an escrow past its deadline.
func (s *WalletService) ExpireEscrow(ctx context.Context, escrowID string, body M) (M, error) {
	return s.escrowAction(ctx, escrowID, "expire", body)
}

func (s *WalletService) escrowAction(ctx context.Context, escrowID, action string, body M) (M, error) {
	var out M
	path := "/api/wallet/escrow/" + escapeSegment(escrowID) + "/" + action
	if err := s.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
