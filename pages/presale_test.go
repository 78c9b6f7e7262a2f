package pages

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"cryptodevs-tui/chain"

	"github.com/stretchr/testify/require"
)

func TestPresalePhases(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	owner := w.env(t, w.ownerKey)
	user := w.env(t, w.userKey)

	require.Equal(t, PhaseDisconnected, PresaleSnapshot{}.Phase(false))
	require.Equal(t, PhaseConnected, PresaleSnapshot{}.Phase(true))

	s, err := LoadPresale(ctx, user)
	require.NoError(t, err)
	require.Equal(t, PhaseNotStarted, s.Phase(true))
	require.False(t, s.IsOwner)

	s, err = LoadPresale(ctx, owner)
	require.NoError(t, err)
	require.True(t, s.IsOwner)

	// Only the owner can start.
	_, err = StartPresale(ctx, user)
	require.Error(t, err)
	_, err = StartPresale(ctx, owner)
	require.NoError(t, err)

	s, err = LoadPresale(ctx, user)
	require.NoError(t, err)
	require.Equal(t, PhaseActive, s.Phase(true))
	require.Equal(t, w.clk.Now().Add(5*time.Minute).Unix(), s.EndsAt.Unix())

	w.clk.Add(5*time.Minute + time.Second)
	s, err = LoadPresale(ctx, user)
	require.NoError(t, err)
	require.Equal(t, PhaseEnded, s.Phase(true))
	require.Equal(t, "presale ended", s.Phase(true).String())
}

func TestPresaleMintIncreasesCounter(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	owner := w.env(t, w.ownerKey)
	user := w.env(t, w.userKey)

	_, err := JoinWhitelist(ctx, user)
	require.NoError(t, err)
	_, err = StartPresale(ctx, owner)
	require.NoError(t, err)

	before, err := LoadPresale(ctx, user)
	require.NoError(t, err)

	_, err = PresaleMint(ctx, user)
	require.NoError(t, err)

	after, err := LoadPresale(ctx, user)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Add(before.Minted, big.NewInt(1)), after.Minted)

	// Public mint is only open once the presale has ended.
	_, err = PublicMint(ctx, user)
	require.Error(t, err)
	w.clk.Add(6 * time.Minute)
	_, err = PublicMint(ctx, user)
	require.NoError(t, err)
	minted, err := TokenIDsMinted(ctx, user)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(2), minted)

	// Mint proceeds went to the contract, the owner can withdraw them.
	bal, err := user.Conn.Balance(ctx, nftAddr)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Mul(MintPrice, big.NewInt(2)), bal)
	_, err = WithdrawNFT(ctx, owner)
	require.NoError(t, err)
	bal, err = user.Conn.Balance(ctx, nftAddr)
	require.NoError(t, err)
	require.Zero(t, bal.Sign())
}

func TestPresalePaused(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	owner := w.env(t, w.ownerKey)
	user := w.env(t, w.userKey)

	_, err := JoinWhitelist(ctx, user)
	require.NoError(t, err)
	_, err = StartPresale(ctx, owner)
	require.NoError(t, err)
	_, err = SetPaused(ctx, owner, true)
	require.NoError(t, err)

	s, err := LoadPresale(ctx, user)
	require.NoError(t, err)
	require.True(t, s.Paused)
	require.Equal(t, PhaseActive, s.Phase(true))

	_, err = PresaleMint(ctx, user)
	var we *chain.WriteError
	require.ErrorAs(t, err, &we)
	require.Equal(t, chain.Reverted, we.Kind)

	_, err = SetPaused(ctx, owner, false)
	require.NoError(t, err)
	_, err = PresaleMint(ctx, user)
	require.NoError(t, err)
}

type presaleEvents struct {
	mu     sync.Mutex
	phase  []PresaleEvent
	minted []PresaleEvent
}

func (e *presaleEvents) add(ev PresaleEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ev.PhaseChecked {
		e.phase = append(e.phase, ev)
	} else {
		e.minted = append(e.minted, ev)
	}
}

func (e *presaleEvents) counts() (phase, minted int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.phase), len(e.minted)
}

func TestPresaleWatcher(t *testing.T) {
	w := newWorld(t)
	env := w.env(t, w.userKey)
	w.b.Do(func() {
		w.presaleStarted = true
		w.presaleEnded = w.now() + 7
	})

	events := &presaleEvents{}
	watcher := WatchPresale(env, PresalePollInterval, events.add)
	watcher.Start()
	defer watcher.Stop()

	waitFor := func(phase, minted int) {
		t.Helper()
		require.Eventually(t, func() bool {
			p, m := events.counts()
			return p == phase && m == minted
		}, time.Second, time.Millisecond)
	}

	w.clk.Add(PresalePollInterval)
	waitFor(1, 1)
	require.False(t, events.phase[0].Ended)

	// Past the end timestamp: the phase poller reports ended and stops.
	w.clk.Add(PresalePollInterval)
	waitFor(2, 2)
	require.True(t, events.phase[1].Ended)
	select {
	case <-watcher.PhaseDone():
	case <-time.After(time.Second):
		t.Fatal("phase poller still running after presale ended")
	}

	// Minting keeps being polled.
	w.b.Do(func() { w.nftOwners = append(w.nftOwners, w.user) })
	w.clk.Add(PresalePollInterval)
	waitFor(2, 3)
	events.mu.Lock()
	require.Equal(t, big.NewInt(1), events.minted[2].Minted)
	events.mu.Unlock()

	select {
	case <-watcher.MintedDone():
		t.Fatal("minted poller stopped early")
	default:
	}

	watcher.Stop()
	<-watcher.MintedDone()
}

func TestPresaleWatcherReadFailure(t *testing.T) {
	w := newWorld(t)
	env := w.env(t, w.userKey)
	w.b.Do(func() {
		w.presaleStarted = true
		w.presaleEnded = w.now() + 600
	})

	events := &presaleEvents{}
	watcher := WatchPresale(env, PresalePollInterval, events.add)
	watcher.Start()
	defer watcher.Stop()

	waitFor := func(phase, minted int) {
		t.Helper()
		require.Eventually(t, func() bool {
			p, m := events.counts()
			return p == phase && m == minted
		}, time.Second, time.Millisecond)
	}

	w.clk.Add(PresalePollInterval)
	waitFor(1, 1)

	w.b.Do(func() { w.b.ChainIDErr = errors.New("node unreachable") })
	w.clk.Add(PresalePollInterval)
	waitFor(2, 2)

	events.mu.Lock()
	require.NoError(t, events.phase[0].Err)
	require.True(t, events.phase[0].Started)
	require.Error(t, events.phase[1].Err)
	require.Error(t, events.minted[1].Err)
	require.Nil(t, events.minted[1].Minted)
	events.mu.Unlock()

	// a failed poll is not an end, the phase poller keeps going
	select {
	case <-watcher.PhaseDone():
		t.Fatal("phase poller stopped on a read failure")
	default:
	}

	w.b.Do(func() { w.b.ChainIDErr = nil })
	w.clk.Add(PresalePollInterval)
	waitFor(3, 3)
	events.mu.Lock()
	require.NoError(t, events.phase[2].Err)
	require.True(t, events.phase[2].Started)
	events.mu.Unlock()
}
