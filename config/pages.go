package config

// Page identifies a screen of the app
type Page int

const (
	PageHome Page = iota
	PageWhitelist
	PagePresale
	PageICO
	PageExchange
	PageDAO
	PageSettings
)

// DApp describes one launchable page on the home grid
type DApp struct {
	Page    Page
	Name    string
	Icon    string
	Address string
	Network string
}

// DApps returns the home grid entries, addresses taken from cfg
func DApps(cfg Config) []DApp {
	network := "Sepolia"
	if cfg.ExpectedChainID() != SepoliaChainID {
		network = "Custom"
	}
	return []DApp{
		{Page: PageWhitelist, Name: "Whitelist", Icon: "📝", Address: cfg.Contracts.Whitelist, Network: network},
		{Page: PagePresale, Name: "NFT Presale", Icon: "🖼", Address: cfg.Contracts.NFT, Network: network},
		{Page: PageICO, Name: "ICO", Icon: "🪙", Address: cfg.Contracts.Token, Network: network},
		{Page: PageExchange, Name: "Exchange", Icon: "🔁", Address: cfg.Contracts.Exchange, Network: network},
		{Page: PageDAO, Name: "DAO", Icon: "🏛", Address: cfg.Contracts.DAO, Network: network},
	}
}

// String returns the page title
func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageWhitelist:
		return "Whitelist"
	case PagePresale:
		return "Presale"
	case PageICO:
		return "ICO"
	case PageExchange:
		return "Exchange"
	case PageDAO:
		return "DAO"
	case PageSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}
