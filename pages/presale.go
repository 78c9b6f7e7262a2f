package pages

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PresalePollInterval is how often the presale page re-reads phase and supply.
const PresalePollInterval = 5 * time.Second

// MintPrice is the cost of one CryptoDev, presale or public.
var MintPrice = ether(10) // 0.01 ETH

// Phase is where the presale page is in its lifecycle. Paused is orthogonal
// and lives on the snapshot.
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnected
	PhaseNotStarted
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "wallet disconnected"
	case PhaseConnected:
		return "connected"
	case PhaseNotStarted:
		return "presale not started"
	case PhaseActive:
		return "presale active"
	case PhaseEnded:
		return "presale ended"
	}
	return "unknown"
}

// PresaleSnapshot is everything the presale page renders.
type PresaleSnapshot struct {
	Loaded  bool
	Started bool
	EndsAt  time.Time
	Ended   bool
	Paused  bool
	IsOwner bool
	Minted  *big.Int
	MaxIDs  *big.Int
	Err     error
}

// Phase derives the page phase from the snapshot.
func (s PresaleSnapshot) Phase(connected bool) Phase {
	switch {
	case !connected:
		return PhaseDisconnected
	case !s.Loaded:
		return PhaseConnected
	case !s.Started:
		return PhaseNotStarted
	case !s.Ended:
		return PhaseActive
	default:
		return PhaseEnded
	}
}

// LoadPresale reads the presale flags, ownership and minted supply.
func LoadPresale(ctx context.Context, env Env) (PresaleSnapshot, error) {
	h, err := env.reader(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs)
	if err != nil {
		return PresaleSnapshot{}, err
	}

	r := env.reads()
	s := PresaleSnapshot{
		Loaded:  true,
		Started: chain.ReadOr(ctx, r, h, false, "presaleStarted"),
		Paused:  chain.ReadOr(ctx, r, h, false, "_paused"),
		IsOwner: env.isOwner(chain.ReadOr(ctx, r, h, common.Address{}, "owner")),
		Minted:  chain.ReadOr(ctx, r, h, new(big.Int), "tokenIds"),
		MaxIDs:  chain.ReadOr(ctx, r, h, new(big.Int), "maxTokenIds"),
	}
	if s.Started {
		ts := chain.ReadOr(ctx, r, h, new(big.Int), "presaleEnded")
		s.EndsAt = time.Unix(ts.Int64(), 0)
		s.Ended = presaleEnded(ts, env.now())
	}
	s.Err = r.Err()
	return s, nil
}

// presaleEnded: the contract stores the end as a unix timestamp.
func presaleEnded(ts *big.Int, now time.Time) bool {
	return ts.Cmp(big.NewInt(now.Unix())) < 0
}

// CheckPresaleStarted reads presaleStarted.
func CheckPresaleStarted(ctx context.Context, env Env) (bool, error) {
	h, err := env.reader(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs)
	if err != nil {
		return false, err
	}
	started, err := chain.Read[bool](ctx, h, "presaleStarted")
	if err != nil {
		return false, fmt.Errorf("presaleStarted: %w", err)
	}
	return started, nil
}

// CheckPresaleEnded compares presaleEnded against the clock.
func CheckPresaleEnded(ctx context.Context, env Env) (bool, error) {
	h, err := env.reader(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs)
	if err != nil {
		return false, err
	}
	ts, err := chain.Read[*big.Int](ctx, h, "presaleEnded")
	if err != nil {
		return false, fmt.Errorf("presaleEnded: %w", err)
	}
	return presaleEnded(ts, env.now()), nil
}

// TokenIDsMinted reads the minted counter.
func TokenIDsMinted(ctx context.Context, env Env) (*big.Int, error) {
	h, err := env.reader(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs)
	if err != nil {
		return nil, err
	}
	n, err := chain.Read[*big.Int](ctx, h, "tokenIds")
	if err != nil {
		return nil, fmt.Errorf("tokenIds: %w", err)
	}
	return n, nil
}

// StartPresale is owner-only.
func StartPresale(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs, nil, "startPresale")
}

// PresaleMint mints one CryptoDev for a whitelisted address.
func PresaleMint(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs, MintPrice, "presaleMint")
}

// PublicMint mints one CryptoDev after the presale.
func PublicMint(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs, MintPrice, "mint")
}

// SetPaused pauses or resumes minting. Owner-only.
func SetPaused(ctx context.Context, env Env, paused bool) (*types.Receipt, error) {
	return env.send(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs, nil, "setPaused", paused)
}

// WithdrawNFT sends the mint proceeds to the owner.
func WithdrawNFT(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs, nil, "withdraw")
}

// PresaleEvent is one poll result. When Err is set the poll failed and the
// other fields carry nothing.
type PresaleEvent struct {
	// Phase events
	PhaseChecked bool
	Started      bool
	Ended        bool
	// Minted events
	Minted *big.Int

	Err error
}

// PresaleWatcher runs the two presale pollers. The phase poller stops once
// the presale is observed to have ended; the minted poller runs until Stop.
type PresaleWatcher struct {
	phase  *chain.Poller
	minted *chain.Poller
}

// WatchPresale builds a stopped watcher. notify is called from the poller
// goroutines.
func WatchPresale(env Env, interval time.Duration, notify func(PresaleEvent)) *PresaleWatcher {
	w := &PresaleWatcher{}
	w.phase = chain.NewPoller(func(ctx context.Context) bool {
		started, err := CheckPresaleStarted(ctx, env)
		ended := false
		if err == nil && started {
			ended, err = CheckPresaleEnded(ctx, env)
		}
		if err != nil {
			env.logger().Error("presale phase poll", "err", err)
			notify(PresaleEvent{PhaseChecked: true, Err: err})
			return false
		}
		notify(PresaleEvent{PhaseChecked: true, Started: started, Ended: ended})
		return ended
	}, env.Clock, interval)
	w.minted = chain.NewPoller(func(ctx context.Context) bool {
		minted, err := TokenIDsMinted(ctx, env)
		if err != nil {
			env.logger().Error("minted poll", "err", err)
		}
		notify(PresaleEvent{Minted: minted, Err: err})
		return false
	}, env.Clock, interval)
	return w
}

// Start both pollers.
func (w *PresaleWatcher) Start() {
	w.phase.Start()
	w.minted.Start()
}

// Stop both pollers and wait for them.
func (w *PresaleWatcher) Stop() {
	w.phase.Stop()
	w.minted.Stop()
}

// PhaseDone is closed when the phase poller has exited.
func (w *PresaleWatcher) PhaseDone() <-chan struct{} { return w.phase.Done() }

// MintedDone is closed when the minted poller has exited.
func (w *PresaleWatcher) MintedDone() <-chan struct{} { return w.minted.Done() }
