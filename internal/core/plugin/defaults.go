package plugin

// Stock plugin ids
const (
	IDAIWatchLogs      = "ai-watch-logs"
	IDZkIDRegistry     = "zkid-registry"
	IDAirdropClaimMap  = "airdrop-claim-map"
	IDValidatorTracker = "validator-tracker"
)

// DefaultDescriptors returns the stock seed shipped with the explorer.
// A fresh slice is returned on every call.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{
			ID:          IDAIWatchLogs,
			Name:        "AI Watch Logs",
			Description: "Real-time AI agent activity monitoring and decision logs",
			Category:    CategoryMonitoring,
			Type:        TypeDrawer,
			Size:        SizeLarge,
			Enabled:     true,
			Position:    0,
		},
		{
			ID:          IDZkIDRegistry,
			Name:        "zkID Registry",
			Description: "Decentralized identity verification and profile management",
			Category:    CategoryIdentity,
			Type:        TypeSubtab,
			Size:        SizeMedium,
			Enabled:     true,
			Position:    1,
		},
		{
			ID:          IDAirdropClaimMap,
			Name:        "Airdrop Claim Map",
			Description: "Interactive map of token airdrops and claim status",
			Category:    CategoryDeFi,
			Type:        TypeOverlay,
			Size:        SizeMedium,
			Enabled:     false,
			Position:    2,
		},
		{
			ID:          IDValidatorTracker,
			Name:        "Validator Tracker",
			Description: "Advanced validator performance analytics and alerts",
			Category:    CategoryMonitoring,
			Type:        TypeDrawer,
			Size:        SizeSmall,
			Enabled:     true,
			Position:    3,
		},
	}
}

// DefaultRegistry builds a registry from DefaultDescriptors
func DefaultRegistry() Registry {
	return MustNewRegistry(DefaultDescriptors())
}
