package views

import (
	"fmt"
	"math/rand"

	"socialblock.io/explorer/internal/core/plugin"
	"socialblock.io/explorer/internal/core/ports"
)

var (
	agents = []struct{ name, action, decision string }{
		{"Transaction Classifier", "classify_transaction", "DeFi Swap"},
		{"Reputation Analyzer", "update_arp_score", "Increase Score +15"},
		{"Anomaly Detector", "detect_unusual_pattern", "Flag for Review"},
		{"Governance Tracker", "analyze_proposal_sentiment", "Positive Trend"},
	}
	impacts       = []string{"low", "medium", "high"}
	verifyLevels  = []string{"basic", "enhanced", "premium"}
	claimStatuses = []string{"claimed", "pending", "expired"}
	regions       = []string{"North America", "Europe", "Asia", "South America", "Africa", "Oceania"}
)

func newAIWatchLogs(rng *rand.Rand) ports.PluginView {
	rows := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		a := agents[rng.Intn(len(agents))]
		rows = append(rows, fmt.Sprintf("%-22s %-27s %-18s %3d%% %s",
			a.name, a.action, a.decision, 70+rng.Intn(30), impacts[rng.Intn(len(impacts))]))
	}
	return &tableView{
		id:     plugin.IDAIWatchLogs,
		title:  "AI Watch Logs",
		header: fmt.Sprintf("%-22s %-27s %-18s %4s %s", "AGENT", "ACTION", "DECISION", "CONF", "IMPACT"),
		rows:   rows,
	}
}

func newZkIDRegistry(rng *rand.Rand) ports.PluginView {
	rows := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		rows = append(rows, fmt.Sprintf("zk%014x  sblk1%010x  %-8s %3d",
			rng.Int63n(1<<56), rng.Int63n(1<<40), verifyLevels[rng.Intn(len(verifyLevels))], 50+rng.Intn(51)))
	}
	return &tableView{
		id:     plugin.IDZkIDRegistry,
		title:  "zkID Registry",
		header: fmt.Sprintf("%-16s  %-15s  %-8s %s", "ZKID", "ADDRESS", "LEVEL", "SCORE"),
		rows:   rows,
	}
}

func newAirdropClaimMap(rng *rand.Rand) ports.PluginView {
	rows := make([]string, 0, len(regions))
	for _, region := range regions {
		total := 500 + rng.Intn(5000)
		claimed := rng.Intn(total + 1)
		rows = append(rows, fmt.Sprintf("%-14s %6d / %-6d %s",
			region, claimed, total, claimStatuses[rng.Intn(len(claimStatuses))]))
	}
	return &tableView{
		id:     plugin.IDAirdropClaimMap,
		title:  "Airdrop Claim Map",
		header: fmt.Sprintf("%-14s %-15s %s", "REGION", "CLAIMED", "STATUS"),
		rows:   rows,
	}
}

func newValidatorTracker(rng *rand.Rand) ports.PluginView {
	rows := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		uptime := 95 + rng.Float64()*5
		rows = append(rows, fmt.Sprintf("validator-%02d  %6.2f%%  %8d  %5.1f%%",
			i+1, uptime, 100000+rng.Intn(900000), rng.Float64()*10))
	}
	return &tableView{
		id:     plugin.IDValidatorTracker,
		title:  "Validator Tracker",
		header: fmt.Sprintf("%-12s  %7s  %8s  %6s", "VALIDATOR", "UPTIME", "STAKE", "COMM"),
		rows:   rows,
	}
}
