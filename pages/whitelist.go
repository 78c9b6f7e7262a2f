package pages

import (
	"context"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/contracts"

	"github.com/ethereum/go-ethereum/core/types"
)

// WhitelistSnapshot is everything the whitelist page renders.
type WhitelistSnapshot struct {
	Joined         bool
	NumWhitelisted uint8
	MaxWhitelisted uint8
	Err            error
}

// Full reports that no more addresses can join.
func (s WhitelistSnapshot) Full() bool {
	return s.MaxWhitelisted > 0 && s.NumWhitelisted >= s.MaxWhitelisted
}

// LoadWhitelist reads membership of the connected address and the counters.
func LoadWhitelist(ctx context.Context, env Env) (WhitelistSnapshot, error) {
	h, err := env.reader(ctx, "whitelist", env.Contracts.Whitelist, contracts.Whitelist)
	if err != nil {
		return WhitelistSnapshot{}, err
	}

	r := env.reads()
	s := WhitelistSnapshot{
		Joined:         chain.ReadOr(ctx, r, h, false, "whitelistedAddresses", env.Conn.Address()),
		NumWhitelisted: chain.ReadOr(ctx, r, h, uint8(0), "numAddressesWhitelisted"),
		MaxWhitelisted: chain.ReadOr(ctx, r, h, uint8(0), "maxWhitelistedAddresses"),
	}
	s.Err = r.Err()
	return s, nil
}

// JoinWhitelist adds the connected address to the whitelist.
func JoinWhitelist(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "whitelist", env.Contracts.Whitelist, contracts.Whitelist, nil, "addAddressToWhitelist")
}
