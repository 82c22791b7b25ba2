package claw

import "encoding/json"

// The structs below mirror the node's JSON schema. Fields the node may
// omit carry omitempty or a pointer so round trips stay faithful.

// ── Node ──────────────────────────────────────────────────────────────

// NodeStatus is the node's self-reported state.
type NodeStatus struct {
	DID         string `json:"did"`
	Synced      bool   `json:"synced"`
	BlockHeight int64  `json:"blockHeight"`
	Peers       int    `json:"peers"`
	Network     string `json:"network"`
	Version     string `json:"version"`
	Uptime      int64  `json:"uptime"`
}

// PeerInfo describes one connected peer.
type PeerInfo struct {
	PeerID      string   `json:"peerId"`
	Multiaddrs  []string `json:"multiaddrs,omitempty"`
	Latency     *int64   `json:"latency,omitempty"`
	ConnectedAt *int64   `json:"connectedAt,omitempty"`
}

// PeersResponse is the paginated peer list.
type PeersResponse struct {
	Peers []PeerInfo `json:"peers"`
	Total int        `json:"total"`
}

// ── Identity ──────────────────────────────────────────────────────────

// Identity is a resolved DID document summary.
type Identity struct {
	DID       string `json:"did"`
	PublicKey string `json:"publicKey"`
	Created   int64  `json:"created,omitempty"`
	Updated   int64  `json:"updated,omitempty"`
}

// Capability is a registered capability credential.
type Capability struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// CapabilitiesResponse lists a DID's capabilities.
type CapabilitiesResponse struct {
	Capabilities []Capability `json:"capabilities"`
}

// ── Wallet ────────────────────────────────────────────────────────────

// Balance is a wallet balance breakdown, in base token units.
type Balance struct {
	Balance   int64 `json:"balance"`
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
	Locked    int64 `json:"locked"`
}

// TransferResult is the receipt for a token transfer.
type TransferResult struct {
	TxHash    string `json:"txHash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// Transaction is one entry in the wallet history.
type Transaction struct {
	TxHash    string `json:"txHash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    int64  `json:"amount"`
	Fee       *int64 `json:"fee,omitempty"`
	Memo      string `json:"memo,omitempty"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// HistoryResponse is the paginated transaction history.
type HistoryResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	HasMore      bool          `json:"hasMore"`
}

// Escrow is a held-funds account released or refunded according to
// node-evaluated rules.
type Escrow struct {
	ID          string `json:"id"`
	Depositor   string `json:"depositor"`
	Beneficiary string `json:"beneficiary"`
	Amount      int64  `json:"amount"`
	Funded      int64  `json:"funded"`
	Released    int64  `json:"released"`
	Status      string `json:"status"`
	ReleaseRule []M    `json:"releaseRules,omitempty"`
	RefundRules []M    `json:"refundRules,omitempty"`
	Arbiter     string `json:"arbiter,omitempty"`
	ExpiresAt   *int64 `json:"expiresAt,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

// ── Reputation ────────────────────────────────────────────────────────

// ReputationDimensions breaks the aggregate score into facets.
type ReputationDimensions struct {
	Transaction *float64 `json:"transaction,omitempty"`
	Delivery    *float64 `json:"delivery,omitempty"`
	Quality     *float64 `json:"quality,omitempty"`
	Social      *float64 `json:"social,omitempty"`
	Behavior    *float64 `json:"behavior,omitempty"`
}

// Reputation is an agent's reputation profile.
type Reputation struct {
	DID               string               `json:"did"`
	Score             float64              `json:"score"`
	Level             string               `json:"level"`
	LevelNumber       int                  `json:"levelNumber"`
	Dimensions        ReputationDimensions `json:"dimensions"`
	TotalTransactions int                  `json:"totalTransactions"`
	SuccessRate       float64              `json:"successRate"`
	AverageRating     float64              `json:"averageRating"`
	Badges            []string             `json:"badges,omitempty"`
	UpdatedAt         *int64               `json:"updatedAt,omitempty"`
}

// Review is one reputation review.
type Review struct {
	ID         string         `json:"id"`
	ContractID string         `json:"contractId,omitempty"`
	Reviewer   string         `json:"reviewer"`
	Reviewee   string         `json:"reviewee"`
	Rating     int            `json:"rating"`
	Comment    string         `json:"comment,omitempty"`
	Aspects    map[string]int `json:"aspects,omitempty"`
	CreatedAt  int64          `json:"createdAt"`
}

// ReviewsResponse is the paginated review list.
type ReviewsResponse struct {
	Reviews       []Review `json:"reviews"`
	Total         int      `json:"total"`
	AverageRating float64  `json:"averageRating"`
}

// ── Markets ───────────────────────────────────────────────────────────

// Pricing describes how a listing is priced.
type Pricing struct {
	Model     string `json:"model"`
	BasePrice int64  `json:"basePrice"`
	Currency  string `json:"currency,omitempty"`
}

// Listing is a marketplace entry of kind info, task, or capability.
type Listing struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Seller      string   `json:"seller"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Pricing     *Pricing `json:"pricing,omitempty"`
	Status      string   `json:"status"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   *int64   `json:"updatedAt,omitempty"`
}

// SearchResult is a cross-market search page.
type SearchResult struct {
	Listings []Listing `json:"listings"`
	Total    int       `json:"total"`
}

// PublishResult is the receipt for publishing a listing.
type PublishResult struct {
	ListingID string `json:"listingId"`
	TxHash    string `json:"txHash"`
}

// PurchaseResult is the receipt for an info-market purchase.
type PurchaseResult struct {
	OrderID string `json:"orderId"`
	TxHash  string `json:"txHash"`
}

// BidResult is the receipt for a task-market bid.
type BidResult struct {
	BidID  string `json:"bidId"`
	TxHash string `json:"txHash"`
}

// LeaseResult is the receipt for a capability lease.
type LeaseResult struct {
	LeaseID string `json:"leaseId"`
	TxHash  string `json:"txHash"`
}

// LeaseDetail is a lease plus its usage trail and stats.
type LeaseDetail struct {
	Lease M   `json:"lease"`
	Usage []M `json:"usage,omitempty"`
	Stats M   `json:"stats,omitempty"`
}

// InvokeResult is the receipt for a capability invocation under a lease.
type InvokeResult struct {
	LeaseID string `json:"leaseId"`
	TxHash  string `json:"txHash"`
	Usage   M      `json:"usage,omitempty"`
}

// LeaseActionResult is the receipt for pause/resume/terminate on a lease.
type LeaseActionResult struct {
	LeaseID string `json:"leaseId"`
	TxHash  string `json:"txHash"`
	Action  string `json:"action"`
}

// ── Contracts ─────────────────────────────────────────────────────────

// ContractTerms describe the service being contracted.
type ContractTerms struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Deliverables []string `json:"deliverables,omitempty"`
	Deadline     *int64   `json:"deadline,omitempty"`
}

// PaymentTerms describe how a contract pays out.
type PaymentTerms struct {
	Type           string `json:"type"`
	TotalAmount    int64  `json:"totalAmount"`
	Currency       string `json:"currency,omitempty"`
	EscrowRequired bool   `json:"escrowRequired,omitempty"`
}

// Milestone is a partial-deliverable checkpoint inside a contract.
type Milestone struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Amount       *int64   `json:"amount,omitempty"`
	Percentage   *int     `json:"percentage,omitempty"`
	Deadline     *int64   `json:"deadline,omitempty"`
	Status       string   `json:"status,omitempty"`
	Deliverables []string `json:"deliverables,omitempty"`
}

// Contract is a full service contract record.
type Contract struct {
	ID         string          `json:"id"`
	Client     string          `json:"client"`
	Provider   string          `json:"provider"`
	Status     string          `json:"status"`
	Terms      ContractTerms   `json:"terms"`
	Payment    PaymentTerms    `json:"payment"`
	Milestones []Milestone     `json:"milestones,omitempty"`
	EscrowID   string          `json:"escrowId,omitempty"`
	Signatures json.RawMessage `json:"signatures,omitempty"`
	CreatedAt  int64           `json:"createdAt"`
}

// CreateContractResult is the receipt for contract creation.
type CreateContractResult struct {
	ContractID string `json:"contractId"`
	TxHash     string `json:"txHash"`
}

// TxResult is the bare transaction receipt shared by most state changes.
type TxResult struct {
	TxHash string `json:"txHash"`
}

// ContractsResponse is the paginated contract list.
type ContractsResponse struct {
	Contracts []Contract `json:"contracts"`
	Total     int        `json:"total"`
}
