package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clawnet/clawnet-go/pkg/claw"
	"github.com/clawnet/clawnet-go/pkg/did"
)

// version is overridden by goreleaser via -ldflags "-X main.version=...".
var version = "dev"

var (
	nodeURL string
	cfgFile string
	apiKey  string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "claw",
	Short: "ClawNet node CLI",
	Long: `claw is the command-line interface for a ClawNet node.

It queries node status and peers, checks wallet balances, searches the
marketplaces, and can run a demo agent workflow against a local node.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(home + "/.claw")
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("claw")
		viper.AutomaticEnv()
		_ = viper.ReadInConfig()

		if nodeURL == "" {
			nodeURL = viper.GetString("node_url")
		}
		if nodeURL == "" {
			nodeURL = claw.DefaultBaseURL
		}
		if apiKey == "" {
			apiKey = viper.GetString("api_key")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.claw/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&nodeURL, "node", "", "node API base URL (default "+claw.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "bearer token for the node API")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request at debug level")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(peersCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(marketCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(versionCmd)
}

// newClient builds a client from the persistent flags.
func newClient() (*claw.Client, error) {
	opts := []claw.Option{}
	if apiKey != "" {
		opts = append(opts, claw.WithAPIKey(apiKey))
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, claw.WithLogger(logger))
	}
	return claw.New(nodeURL, opts...)
}

// ── status ───────────────────────────────────────────────────────────────────

var (
	statusWait     bool
	statusInterval time.Duration
	statusTimeout  time.Duration
	statusFormat   string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the node's sync state, height, and peer count",
	Long: `Status reports the node's self-described state.

With --wait, it polls until the node reports itself synced:

  claw status --wait --interval 2s --timeout 5m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		ctx := context.Background()

		var st *claw.NodeStatus
		if statusWait {
			st, err = c.Node.WaitForSync(ctx, statusInterval, statusTimeout)
			var ste *claw.SyncTimeoutError
			if errors.As(err, &ste) {
				return fmt.Errorf("node at %s did not sync within %s", c.BaseURL(), ste.Timeout)
			}
		} else {
			st, err = c.Node.GetStatus(ctx)
		}
		if err != nil {
			return fmt.Errorf("node status: %w", err)
		}

		if statusFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		fmt.Printf("DID:     %s\n", st.DID)
		fmt.Printf("Network: %s\n", st.Network)
		fmt.Printf("Synced:  %t\n", st.Synced)
		fmt.Printf("Height:  %d\n", st.BlockHeight)
		fmt.Printf("Peers:   %d\n", st.Peers)
		fmt.Printf("Version: %s\n", st.Version)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusWait, "wait", false, "Block until the node reports synced")
	statusCmd.Flags().DurationVar(&statusInterval, "interval", 2*time.Second, "Poll interval for --wait")
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 5*time.Minute, "Give up on --wait after this long")
	statusCmd.Flags().StringVar(&statusFormat, "format", "text", "Output format: text or json")
}

// ── peers ────────────────────────────────────────────────────────────────────

var (
	peersLimit  int
	peersOffset int
)

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "List the node's connected peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		resp, err := c.Node.GetPeers(context.Background(), peersLimit, peersOffset)
		if err != nil {
			return fmt.Errorf("list peers: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PEER\tLATENCY\tADDRS")
		for _, p := range resp.Peers {
			latency := "-"
			if p.Latency != nil {
				latency = fmt.Sprintf("%dms", *p.Latency)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.PeerID, latency, strings.Join(p.Multiaddrs, ","))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d of %d peers\n", len(resp.Peers), resp.Total)
		return nil
	},
}

func init() {
	peersCmd.Flags().IntVar(&peersLimit, "limit", 0, "Maximum peers to return (0 = node default)")
	peersCmd.Flags().IntVar(&peersOffset, "offset", 0, "Pagination offset")
}

// ── balance ──────────────────────────────────────────────────────────────────

var (
	balanceDID     string
	balanceAddress string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show a wallet balance by DID or address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if balanceDID != "" {
			if _, err := did.Parse(balanceDID); err != nil {
				return err
			}
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		b, err := c.Wallet.GetBalance(context.Background(), balanceDID, balanceAddress)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}

		fmt.Printf("Balance:   %d\n", b.Balance)
		fmt.Printf("Available: %d\n", b.Available)
		fmt.Printf("Pending:   %d\n", b.Pending)
		fmt.Printf("Locked:    %d\n", b.Locked)
		return nil
	},
}

func init() {
	balanceCmd.Flags().StringVar(&balanceDID, "did", "", "Wallet owner DID")
	balanceCmd.Flags().StringVar(&balanceAddress, "address", "", "Wallet address (alternative to --did)")
}

// ── market ───────────────────────────────────────────────────────────────────

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Query the info, task, and capability marketplaces",
}

var (
	searchType  string
	searchTags  []string
	searchLimit int
)

var marketSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search listings across all marketplaces",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		params := url.Values{}
		if len(args) == 1 {
			params.Set("q", args[0])
		}
		if searchType != "" {
			params.Set("type", searchType)
		}
		for _, tag := range searchTags {
			params.Add("tags", tag)
		}
		if searchLimit > 0 {
			params.Set("limit", fmt.Sprint(searchLimit))
		}

		res, err := c.Markets.Search(context.Background(), params)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tTITLE\tSELLER\tPRICE\tSTATUS")
		for _, l := range res.Listings {
			price := "-"
			if l.Pricing != nil {
				price = fmt.Sprintf("%d (%s)", l.Pricing.BasePrice, l.Pricing.Model)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.Type, l.Title, l.Seller, price, l.Status)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d of %d listings\n", len(res.Listings), res.Total)
		return nil
	},
}

func init() {
	marketSearchCmd.Flags().StringVar(&searchType, "type", "", "Listing type: info, task, or capability")
	marketSearchCmd.Flags().StringSliceVar(&searchTags, "tags", nil, "Filter by tags (repeatable)")
	marketSearchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum listings to return")
	marketCmd.AddCommand(marketSearchCmd)
}

// ── agent ────────────────────────────────────────────────────────────────────

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run agent workflows against the node",
}

var (
	runDID        string
	runPassphrase string
	runConcurrent bool
	runTimeout    time.Duration
)

var agentRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo provider workflow: sync, look up, bid, contract, deliver",
	Long: `Run exercises the full provider loop against a node:

wait for sync, resolve the agent's identity, check its balance, search
the task market, bid on the first open task, draw up a contract for it,
submit the first milestone, and record the outcome. With --concurrent
the read-only lookups run in parallel.`,
	RunE: runAgent,
}

func init() {
	agentRunCmd.Flags().StringVar(&runDID, "did", "", "Acting agent DID")
	agentRunCmd.Flags().StringVar(&runPassphrase, "passphrase", "", "Acting agent passphrase")
	agentRunCmd.Flags().BoolVar(&runConcurrent, "concurrent", false, "Run independent lookups in parallel")
	agentRunCmd.Flags().DurationVar(&runTimeout, "timeout", 2*time.Minute, "Overall workflow deadline")
	_ = agentRunCmd.MarkFlagRequired("did")
	_ = agentRunCmd.MarkFlagRequired("passphrase")
	agentCmd.AddCommand(agentRunCmd)
}

func runAgent(cmd *cobra.Command, args []string) error {
	if _, err := did.Parse(runDID); err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	c, err := newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// 1. Wait until the node is usable.
	st, err := c.Node.WaitForSync(ctx, 2*time.Second, runTimeout)
	if err != nil {
		return fmt.Errorf("wait for sync: %w", err)
	}
	logger.Info("node synced",
		zap.String("network", st.Network),
		zap.Int64("height", st.BlockHeight),
		zap.Int("peers", st.Peers))

	// 2. Identity, balance, and open tasks. These reads are independent.
	var (
		identity *claw.Identity
		balance  *claw.Balance
		tasks    *claw.SearchResult
	)
	taskQuery := url.Values{"status": {"open"}, "limit": {"10"}}

	if runConcurrent {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			identity, err = c.Identity.Get(gctx, runDID)
			return err
		})
		g.Go(func() error {
			var err error
			balance, err = c.Wallet.GetBalance(gctx, runDID, "")
			return err
		})
		g.Go(func() error {
			var err error
			tasks, err = c.Markets.Tasks.List(gctx, taskQuery)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("lookups: %w", err)
		}
	} else {
		if identity, err = c.Identity.Get(ctx, runDID); err != nil {
			return fmt.Errorf("resolve identity: %w", err)
		}
		if balance, err = c.Wallet.GetBalance(ctx, runDID, ""); err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		if tasks, err = c.Markets.Tasks.List(ctx, taskQuery); err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
	}
	logger.Info("agent ready",
		zap.String("did", identity.DID),
		zap.Int64("available", balance.Available),
		zap.Int("openTasks", len(tasks.Listings)))

	if len(tasks.Listings) == 0 {
		logger.Info("no open tasks, nothing to bid on")
		return nil
	}

	// 3. Bid on the first open task.
	sess := claw.NewSession(runDID, runPassphrase)
	task := tasks.Listings[0]
	ref := uuid.NewString()
	amount := taskBidAmount(task)

	bid, err := c.Markets.Tasks.Bid(ctx, task.ID, sess.Envelope(claw.M{
		"amount": amount,
		"ref":    ref,
		"note":   "automated bid",
	}))
	if err != nil {
		return fmt.Errorf("bid on task %s: %w", task.ID, err)
	}
	logger.Info("bid placed",
		zap.String("task", task.ID),
		zap.String("bid", bid.BidID),
		zap.String("tx", bid.TxHash),
		zap.String("ref", ref))

	// 4. Draw up a milestone contract for the work and submit the first
	// milestone deliverable.
	contract, err := c.Contracts.Create(ctx, sess.Envelope(claw.M{
		"provider": runDID,
		"client":   task.Seller,
		"terms": claw.M{
			"title":       task.Title,
			"description": "bid " + bid.BidID + " on task " + task.ID,
		},
		"payment": claw.M{"type": "milestone", "totalAmount": amount},
		"milestones": []claw.M{
			{"id": "ms-1", "title": "delivery", "percentage": 100},
		},
		"ref": ref,
	}))
	if err != nil {
		return fmt.Errorf("create contract: %w", err)
	}
	logger.Info("contract created",
		zap.String("contract", contract.ContractID),
		zap.String("tx", contract.TxHash))

	if _, err := c.Contracts.SubmitMilestone(ctx, contract.ContractID, "ms-1",
		sess.Envelope(claw.M{"deliverable": "result for " + task.ID, "ref": ref})); err != nil {
		return fmt.Errorf("submit milestone: %w", err)
	}
	logger.Info("milestone submitted", zap.String("contract", contract.ContractID))

	// 5. Record the engagement on the reputation trail.
	if _, err := c.Reputation.Record(ctx, sess.Envelope(claw.M{
		"target":    task.Seller,
		"dimension": "transaction",
		"score":     100,
		"ref":       ref,
	})); err != nil {
		return fmt.Errorf("record reputation: %w", err)
	}
	logger.Info("workflow complete", zap.String("ref", ref))
	return nil
}

// taskBidAmount bids the listed base price, or a nominal 1 when the task
// carries no pricing.
func taskBidAmount(task claw.Listing) int64 {
	if task.Pricing != nil && task.Pricing.BasePrice > 0 {
		return task.Pricing.BasePrice
	}
	return 1
}

// ── version ──────────────────────────────────────────────────────────────────

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the claw CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("claw %s (ClawNet)\n", version)
	},
}
