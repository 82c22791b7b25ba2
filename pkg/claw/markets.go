package claw

import (
	"context"
	"net/url"
)

// Market kind segments used in dispute paths and search filters.
const (
	MarketInfo         = "info"
	MarketTasks        = "tasks"
	MarketCapabilities = "capabilities"
)

// MarketsService aggregates the three marketplaces and cross-market
// search and disputes.
type MarketsService struct {
	client *Client

	Info       *InfoMarket
	Tasks      *TaskMarket
	Capability *CapabilityMarket
	Disputes   *MarketDisputes
}

func newMarketsService(c *Client) *MarketsService {
	return &MarketsService{
		client:     c,
		Info:       &InfoMarket{client: c},
		Tasks:      &TaskMarket{client: c},
		Capability: &CapabilityMarket{client: c},
		Disputes:   &MarketDisputes{client: c},
	}
}

// Search queries across all market types. Common params: q, type, tags,
// limit, offset.
func (s *MarketsService) Search(ctx context.Context, params url.Values) (*SearchResult, error) {
	var out SearchResult
	if err := s.client.Get(ctx, "/api/markets/search", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Info market ───────────────────────────────────────────────────────

// InfoMarket sells one-shot or subscription information listings.
type InfoMarket struct {
	client *Client
}

func (m *InfoMarket) List(ctx context.Context, params url.Values) (*SearchResult, error) {
	var out SearchResult
	if err := m.client.Get(ctx, "/api/markets/info", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *InfoMarket) Get(ctx context.Context, listingID string) (*Listing, error) {
	var out Listing
	if err := m.client.Get(ctx, "/api/markets/info/"+escapeSegment(listingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *InfoMarket) Publish(ctx context.Context, body M) (*PublishResult, error) {
	var out PublishResult
	if err := m.client.Post(ctx, "/api/markets/info", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContent fetches the listing's content payload (available to the
// seller and to buyers with a completed order).
func (m *InfoMarket) GetContent(ctx context.Context, listingID string) (M, error) {
	var out M
	if err := m.client.Get(ctx, "/api/markets/info/"+escapeSegment(listingID)+"/content", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *InfoMarket) Purchase(ctx context.Context, listingID string, body M) (*PurchaseResult, error) {
	var out PurchaseResult
	if err := m.client.Post(ctx, "/api/markets/info/"+escapeSegment(listingID)+"/purchase", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *InfoMarket) Deliver(ctx context.Context, listingID string, body M) (*TxResult, error) {
	return m.action(ctx, listingID, "deliver", body)
}

func (m *InfoMarket) Confirm(ctx context.Context, listingID string, body M) (*TxResult, error) {
	return m.action(ctx, listingID, "confirm", body)
}

func (m *InfoMarket) Review(ctx context.Context, listingID string, body M) (*TxResult, error) {
	return m.action(ctx, listingID, "review", body)
}

func (m *InfoMarket) Subscribe(ctx context.Context, listingID string, body M) (*TxResult, error) {
	return m.action(ctx, listingID, "subscribe", body)
}

func (m *InfoMarket) Unsubscribe(ctx context.Context, listingID string, body M) (*TxResult, error) {
	return m.action(ctx, listingID, "unsubscribe", body)
}

// Remove delists a listing owned by the caller.
func (m *InfoMarket) Remove(ctx context.Context, listingID string) (*TxResult, error) {
	var out TxResult
	if err := m.client.Delete(ctx, "/api/markets/info/"+escapeSegment(listingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDelivery fetches the delivery payload for a completed order.
func (m *InfoMarket) GetDelivery(ctx context.Context, orderID string) (M, error) {
	var out M
	if err := m.client.Get(ctx, "/api/markets/info/orders/"+escapeSegment(orderID)+"/delivery", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *InfoMarket) action(ctx context.Context, listingID, action string, body M) (*TxResult, error) {
	var out TxResult
	path := "/api/markets/info/" + escapeSegment(listingID) + "/" + action
	if err := m.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Task market ───────────────────────────────────────────────────────

// TaskMarket posts jobs and runs the bid/accept/deliver/confirm flow.
type TaskMarket struct {
	client *Client
}

func (m *TaskMarket) List(ctx context.Context, params url.Values) (*SearchResult, error) {
	var out SearchResult
	if err := m.client.Get(ctx, "/api/markets/tasks", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *TaskMarket) Get(ctx context.Context, taskID string) (*Listing, error) {
	var out Listing
	if err := m.client.Get(ctx, "/api/markets/tasks/"+escapeSegment(taskID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *TaskMarket) Publish(ctx context.Context, body M) (*PublishResult, error) {
	var out PublishResult
	if err := m.client.Post(ctx, "/api/markets/tasks", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *TaskMarket) GetBids(ctx context.Context, taskID string) (M, error) {
	var out M
	if err := m.client.Get(ctx, "/api/markets/tasks/"+escapeSegment(taskID)+"/bids", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bid places a bid on an open task.
func (m *TaskMarket) Bid(ctx context.Context, taskID string, body M) (*BidResult, error) {
	var out BidResult
	if err := m.client.Post(ctx, "/api/markets/tasks/"+escapeSegment(taskID)+"/bids", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *TaskMarket) AcceptBid(ctx context.Context, taskID string, body M) (*TxResult, error) {
	return m.action(ctx, taskID, "accept", body)
}

func (m *TaskMarket) RejectBid(ctx context.Context, taskID string, body M) (*TxResult, error) {
	return m.action(ctx, taskID, "reject", body)
}

func (m *TaskMarket) WithdrawBid(ctx context.Context, taskID string, body M) (*TxResult, error) {
	return m.action(ctx, taskID, "withdraw", body)
}

func (m *TaskMarket) Deliver(ctx context.Context, taskID string, body M) (*TxResult, error) {
	return m.action(ctx, taskID, "deliver", body)
}

func (m *TaskMarket) Confirm(ctx context.Context, taskID string, body M) (*TxResult, error) {
	return m.action(ctx, taskID, "confirm", body)
}

func (m *TaskMarket) Review(ctx context.Context, taskID string, body M) (*TxResult, error) {
	return m.action(ctx, taskID, "review", body)
}

func (m *TaskMarket) Remove(ctx context.Context, taskID string) (*TxResult, error) {
	var out TxResult
	if err := m.client.Delete(ctx, "/api/markets/tasks/"+escapeSegment(taskID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *TaskMarket) action(ctx context.Context, taskID, action string, body M) (*TxResult, error) {
	var out TxResult
	path := "/api/markets/tasks/" + escapeSegment(taskID) + "/" + action
	if err := m.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Capability market ─────────────────────────────────────────────────

// CapabilityMarket leases invocable capabilities between agents.
type CapabilityMarket struct {
	client *Client
}

func (m *CapabilityMarket) List(ctx context.Context, params url.Values) (*SearchResult, error) {
	var out SearchResult
	if err := m.client.Get(ctx, "/api/markets/capabilities", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *CapabilityMarket) Get(ctx context.Context, listingID string) (*Listing, error) {
	var out Listing
	if err := m.client.Get(ctx, "/api/markets/capabilities/"+escapeSegment(listingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *CapabilityMarket) Publish(ctx context.Context, body M) (*PublishResult, error) {
	var out PublishResult
	if err := m.client.Post(ctx, "/api/markets/capabilities", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Lease opens a lease on a capability listing.
func (m *CapabilityMarket) Lease(ctx context.Context, listingID string, body M) (*LeaseResult, error) {
	var out LeaseResult
	if err := m.client.Post(ctx, "/api/markets/capabilities/"+escapeSegment(listingID)+"/lease", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLeaseDetail fetches a lease with its usage trail and stats.
func (m *CapabilityMarket) GetLeaseDetail(ctx context.Context, listingID, leaseID string) (*LeaseDetail, error) {
	var out LeaseDetail
	if err := m.client.Get(ctx, m.leasePath(listingID, leaseID, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Invoke calls the leased capability once, metered against the lease.
func (m *CapabilityMarket) Invoke(ctx context.Context, listingID, leaseID string, body M) (*InvokeResult, error) {
	var out InvokeResult
	if err := m.client.Post(ctx, m.leasePath(listingID, leaseID, "invoke"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *CapabilityMarket) PauseLease(ctx context.Context, listingID, leaseID string, body M) (*LeaseActionResult, error) {
	return m.leaseAction(ctx, listingID, leaseID, "pause", body)
}

func (m *CapabilityMarket) ResumeLease(ctx context.Context, listingID, leaseID string, body M) (*LeaseActionResult, error) {
	return m.leaseAction(ctx, listingID, leaseID, "resume", body)
}

func (m *CapabilityMarket) TerminateLease(ctx context.Context, listingID, leaseID string, body M) (*LeaseActionResult, error) {
	return m.leaseAction(ctx, listingID, leaseID, "terminate", body)
}

func (m *CapabilityMarket) Remove(ctx context.Context, listingID string) (*TxResult, error) {
	var out TxResult
	if err := m.client.Delete(ctx, "/api/markets/capabilities/"+escapeSegment(listingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *CapabilityMarket) leasePath(listingID, leaseID, action string) string {
	p := "/api/markets/capabilities/" + escapeSegment(listingID) + "/leases/" + escapeSegment(leaseID)
	if action != "" {
		p += "/" + action
	}
	return p
}

func (m *CapabilityMarket) leaseAction(ctx context.Context, listingID, leaseID, action string, body M) (*LeaseActionResult, error) {
	var out LeaseActionResult
	if err := m.client.Post(ctx, m.leasePath(listingID, leaseID, action), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Disputes ──────────────────────────────────────────────────────────

// MarketDisputes opens and settles disputes on any market kind. market
// is one of MarketInfo, MarketTasks, MarketCapabilities.
type MarketDisputes struct {
	client *Client
}

func (m *MarketDisputes) Open(ctx context.Context, market, listingID string, body M) (*TxResult, error) {
	var out TxResult
	path := "/api/markets/" + escapeSegment(market) + "/" + escapeSegment(listingID) + "/dispute"
	if err := m.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MarketDisputes) Respond(ctx context.Context, market, listingID, disputeID string, body M) (*TxResult, error) {
	return m.action(ctx, market, listingID, disputeID, "respond", body)
}

func (m *MarketDisputes) Resolve(ctx context.Context, market, listingID, disputeID string, body M) (*TxResult, error) {
	return m.action(ctx, market, listingID, disputeID, "resolve", body)
}

func (m *MarketDisputes) action(ctx context.Context, market, listingID, disputeID, action string, body M) (*TxResult, error) {
	var out TxResult
	path := "/api/markets/" + escapeSegment(market) + "/" + escapeSegment(listingID) +
		"/dispute/" + escapeSegment(disputeID) + "/" + action
	if err := m.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
