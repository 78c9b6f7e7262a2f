package pages

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"
	"time"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/chain/chaintest"
	"cryptodevs-tui/config"
	"cryptodevs-tui/contracts"
	"cryptodevs-tui/helpers"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

var (
	whitelistAddr   = common.HexToAddress("0x532C7f4127c10BeD66D80024ba3725efcC738d0e")
	nftAddr         = common.HexToAddress("0xD44B2e199611812e58dc8e6ccd3189298E8Bc3A8")
	tokenAddr       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	exchangeAddr    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	daoAddr         = common.HexToAddress("0x3333333333333333333333333333333333333333")
	marketplaceAddr = common.HexToAddress("0x4444444444444444444444444444444444444444")

	nftPrice = big.NewInt(1e17) // marketplace price, 0.1 ETH
)

func eth(n int64) *big.Int { return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18)) }

func ret(v ...any) ([]any, error) { return v, nil }

type proposal struct {
	tokenID  *big.Int
	deadline int64
	yay, nay *big.Int
	executed bool
	voted    map[common.Address]bool
}

// world is a fake chain running simplified CryptoDevs contracts. Its fields
// must only be touched from handlers or inside b.Do.
type world struct {
	b   *chaintest.Backend
	clk *clock.Mock

	ownerKey, userKey *ecdsa.PrivateKey
	owner, user       common.Address

	whitelisted    map[common.Address]bool
	maxWhitelisted uint8

	presaleStarted bool
	presaleEnded   int64
	paused         bool
	nftOwners      []common.Address // token id i+1

	cd         map[common.Address]*big.Int
	cdSupply   *big.Int
	claimed    map[int64]bool
	allowance  map[common.Address]*big.Int // to the exchange
	failSupply bool

	lp       map[common.Address]*big.Int
	lpSupply *big.Int

	proposals []*proposal
}

func newWorld(t *testing.T) *world {
	t.Helper()
	ownerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	userKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	clk := clock.NewMock()
	clk.Set(time.Unix(1_700_000_000, 0))

	w := &world{
		b:              chaintest.New(config.SepoliaChainID),
		clk:            clk,
		ownerKey:       ownerKey,
		userKey:        userKey,
		owner:          crypto.PubkeyToAddress(ownerKey.PublicKey),
		user:           crypto.PubkeyToAddress(userKey.PublicKey),
		whitelisted:    map[common.Address]bool{},
		maxWhitelisted: 10,
		cd:             map[common.Address]*big.Int{},
		cdSupply:       new(big.Int),
		claimed:        map[int64]bool{},
		allowance:      map[common.Address]*big.Int{},
		lp:             map[common.Address]*big.Int{},
		lpSupply:       new(big.Int),
	}
	w.b.SetBalance(w.owner, eth(100))
	w.b.SetBalance(w.user, eth(100))

	w.deployWhitelist()
	w.deployNFT()
	w.deployToken()
	w.deployExchange()
	w.deployDAO()
	return w
}

func (w *world) contracts() config.Contracts {
	return config.Contracts{
		Whitelist: whitelistAddr.Hex(),
		NFT:       nftAddr.Hex(),
		Token:     tokenAddr.Hex(),
		Exchange:  exchangeAddr.Hex(),
		DAO:       daoAddr.Hex(),
	}
}

func (w *world) env(t *testing.T, key *ecdsa.PrivateKey) Env {
	t.Helper()
	conn, err := chain.Connect(context.Background(), w.b, key, config.SepoliaChainID)
	require.NoError(t, err)
	return Env{Conn: conn, Contracts: w.contracts(), Clock: w.clk}
}

func (w *world) now() int64 { return w.clk.Now().Unix() }

func (w *world) nftBalance(addr common.Address) int64 {
	var n int64
	for _, o := range w.nftOwners {
		if o == addr {
			n++
		}
	}
	return n
}

func (w *world) cdOf(addr common.Address) *big.Int {
	if v, ok := w.cd[addr]; ok {
		return v
	}
	return new(big.Int)
}

func (w *world) lpOf(addr common.Address) *big.Int {
	if v, ok := w.lp[addr]; ok {
		return v
	}
	return new(big.Int)
}

func (w *world) mintCD(to common.Address, amount *big.Int) {
	w.cd[to] = new(big.Int).Add(w.cdOf(to), amount)
	w.cdSupply = new(big.Int).Add(w.cdSupply, amount)
}

func (w *world) transferCD(from, to common.Address, amount *big.Int) error {
	if w.cdOf(from).Cmp(amount) < 0 {
		return errors.New("ERC20: transfer amount exceeds balance")
	}
	w.cd[from] = new(big.Int).Sub(w.cdOf(from), amount)
	w.cd[to] = new(big.Int).Add(w.cdOf(to), amount)
	return nil
}

func (w *world) pullCD(from common.Address, amount *big.Int) error {
	allowed, ok := w.allowance[from]
	if !ok || allowed.Cmp(amount) < 0 {
		return errors.New("ERC20: insufficient allowance")
	}
	if err := w.transferCD(from, exchangeAddr, amount); err != nil {
		return err
	}
	w.allowance[from] = new(big.Int).Sub(allowed, amount)
	return nil
}

func (w *world) deployWhitelist() {
	w.b.Deploy(whitelistAddr, contracts.Whitelist).
		OnCall("whitelistedAddresses", func(_ common.Address, args []any) ([]any, error) {
			return ret(w.whitelisted[args[0].(common.Address)])
		}).
		OnCall("numAddressesWhitelisted", func(common.Address, []any) ([]any, error) {
			return ret(uint8(len(w.whitelisted)))
		}).
		OnCall("maxWhitelistedAddresses", func(common.Address, []any) ([]any, error) {
			return ret(w.maxWhitelisted)
		}).
		OnTransact("addAddressToWhitelist", func(c *chaintest.Call) error {
			if w.whitelisted[c.From] {
				return errors.New("Sender has already been whitelisted")
			}
			if len(w.whitelisted) >= int(w.maxWhitelisted) {
				return errors.New("More addresses cant be added, limit reached")
			}
			w.whitelisted[c.From] = true
			return nil
		})
}

func (w *world) deployNFT() {
	mint := func(c *chaintest.Call) error {
		if w.paused {
			return errors.New("Contract currently paused")
		}
		if c.Value.Cmp(MintPrice) < 0 {
			return errors.New("Ether sent is not correct")
		}
		if len(w.nftOwners) >= 20 {
			return errors.New("Exceeded maximum Crypto Devs supply")
		}
		w.nftOwners = append(w.nftOwners, c.From)
		return nil
	}
	onlyOwner := func(c *chaintest.Call) error {
		if c.From != w.owner {
			return errors.New("Ownable: caller is not the owner")
		}
		return nil
	}

	w.b.Deploy(nftAddr, contracts.CryptoDevs).
		OnCall("presaleStarted", func(common.Address, []any) ([]any, error) { return ret(w.presaleStarted) }).
		OnCall("presaleEnded", func(common.Address, []any) ([]any, error) { return ret(big.NewInt(w.presaleEnded)) }).
		OnCall("_paused", func(common.Address, []any) ([]any, error) { return ret(w.paused) }).
		OnCall("owner", func(common.Address, []any) ([]any, error) { return ret(w.owner) }).
		OnCall("tokenIds", func(common.Address, []any) ([]any, error) { return ret(big.NewInt(int64(len(w.nftOwners)))) }).
		OnCall("maxTokenIds", func(common.Address, []any) ([]any, error) { return ret(big.NewInt(20)) }).
		OnCall("balanceOf", func(_ common.Address, args []any) ([]any, error) {
			return ret(big.NewInt(w.nftBalance(args[0].(common.Address))))
		}).
		OnCall("tokenOfOwnerByIndex", func(_ common.Address, args []any) ([]any, error) {
			owner, index := args[0].(common.Address), args[1].(*big.Int).Int64()
			for i, o := range w.nftOwners {
				if o != owner {
					continue
				}
				if index == 0 {
					return ret(big.NewInt(int64(i + 1)))
				}
				index--
			}
			return nil, errors.New("ERC721Enumerable: owner index out of bounds")
		}).
		OnTransact("startPresale", func(c *chaintest.Call) error {
			if err := onlyOwner(c); err != nil {
				return err
			}
			w.presaleStarted = true
			w.presaleEnded = w.now() + 5*60
			return nil
		}).
		OnTransact("presaleMint", func(c *chaintest.Call) error {
			if !w.presaleStarted || w.now() >= w.presaleEnded {
				return errors.New("Presale is not running")
			}
			if !w.whitelisted[c.From] {
				return errors.New("You are not whitelisted")
			}
			return mint(c)
		}).
		OnTransact("mint", func(c *chaintest.Call) error {
			if !w.presaleStarted || w.now() < w.presaleEnded {
				return errors.New("Presale has not ended yet")
			}
			return mint(c)
		}).
		OnTransact("setPaused", func(c *chaintest.Call) error {
			if err := onlyOwner(c); err != nil {
				return err
			}
			w.paused = c.Args[0].(bool)
			return nil
		}).
		OnTransact("withdraw", func(c *chaintest.Call) error {
			if err := onlyOwner(c); err != nil {
				return err
			}
			c.Pay(w.owner, c.Balance(nftAddr))
			return nil
		})
}

func (w *world) deployToken() {
	w.b.Deploy(tokenAddr, contracts.CryptoDevToken).
		OnCall("balanceOf", func(_ common.Address, args []any) ([]any, error) {
			return ret(new(big.Int).Set(w.cdOf(args[0].(common.Address))))
		}).
		OnCall("totalSupply", func(common.Address, []any) ([]any, error) {
			if w.failSupply {
				return nil, errors.New("node hiccup")
			}
			return ret(new(big.Int).Set(w.cdSupply))
		}).
		OnCall("owner", func(common.Address, []any) ([]any, error) { return ret(w.owner) }).
		OnCall("tokenIdsClaimed", func(_ common.Address, args []any) ([]any, error) {
			return ret(w.claimed[args[0].(*big.Int).Int64()])
		}).
		OnCall("allowance", func(_ common.Address, args []any) ([]any, error) {
			if v, ok := w.allowance[args[0].(common.Address)]; ok {
				return ret(new(big.Int).Set(v))
			}
			return ret(new(big.Int))
		}).
		OnTransact("approve", func(c *chaintest.Call) error {
			if c.Args[0].(common.Address) != exchangeAddr {
				return errors.New("unexpected spender")
			}
			w.allowance[c.From] = new(big.Int).Set(c.Args[1].(*big.Int))
			return nil
		}).
		OnTransact("claim", func(c *chaintest.Call) error {
			var amount int64
			for i, o := range w.nftOwners {
				id := int64(i + 1)
				if o == c.From && !w.claimed[id] {
					w.claimed[id] = true
					amount++
				}
			}
			if amount == 0 {
				return errors.New("You have already claimed all the tokens")
			}
			w.mintCD(c.From, eth(amount*TokensPerNFT))
			return nil
		}).
		OnTransact("mint", func(c *chaintest.Call) error {
			n := c.Args[0].(*big.Int)
			if c.Value.Cmp(new(big.Int).Mul(TokenPrice, n)) < 0 {
				return errors.New("Ether sent is incorrect")
			}
			amount := new(big.Int).Mul(n, tokenUnit)
			if new(big.Int).Add(w.cdSupply, amount).Cmp(eth(MaxTotalSupply)) > 0 {
				return errors.New("Exceeds the max total supply available.")
			}
			w.mintCD(c.From, amount)
			return nil
		}).
		OnTransact("withdraw", func(c *chaintest.Call) error {
			if c.From != w.owner {
				return errors.New("Ownable: caller is not the owner")
			}
			c.Pay(w.owner, c.Balance(tokenAddr))
			return nil
		})
}

func (w *world) deployExchange() {
	w.b.Deploy(exchangeAddr, contracts.Exchange).
		OnCall("getReserve", func(common.Address, []any) ([]any, error) {
			return ret(new(big.Int).Set(w.cdOf(exchangeAddr)))
		}).
		OnCall("getAmountOfTokens", func(_ common.Address, args []any) ([]any, error) {
			in, inRes, outRes := args[0].(*big.Int), args[1].(*big.Int), args[2].(*big.Int)
			if inRes.Sign() <= 0 || outRes.Sign() <= 0 {
				return nil, errors.New("invalid reserves")
			}
			return ret(helpers.AmountOut(in, inRes, outRes))
		}).
		OnCall("balanceOf", func(_ common.Address, args []any) ([]any, error) {
			return ret(new(big.Int).Set(w.lpOf(args[0].(common.Address))))
		}).
		OnCall("totalSupply", func(common.Address, []any) ([]any, error) {
			return ret(new(big.Int).Set(w.lpSupply))
		}).
		OnTransact("addLiquidity", func(c *chaintest.Call) error {
			amount := c.Args[0].(*big.Int)
			ethBalance := c.Balance(exchangeAddr)
			cdReserve := w.cdOf(exchangeAddr)
			var liquidity *big.Int
			if cdReserve.Sign() == 0 {
				if err := w.pullCD(c.From, amount); err != nil {
					return err
				}
				liquidity = ethBalance
			} else {
				ethReserve := new(big.Int).Sub(ethBalance, c.Value)
				cdAmount := new(big.Int).Div(new(big.Int).Mul(c.Value, cdReserve), ethReserve)
				if amount.Cmp(cdAmount) < 0 {
					return errors.New("Amount of tokens sent is less than the minimum tokens required")
				}
				if err := w.pullCD(c.From, cdAmount); err != nil {
					return err
				}
				liquidity = new(big.Int).Div(new(big.Int).Mul(w.lpSupply, c.Value), ethReserve)
			}
			w.lp[c.From] = new(big.Int).Add(w.lpOf(c.From), liquidity)
			w.lpSupply = new(big.Int).Add(w.lpSupply, liquidity)
			return nil
		}).
		OnTransact("removeLiquidity", func(c *chaintest.Call) error {
			amount := c.Args[0].(*big.Int)
			if amount.Sign() <= 0 || w.lpOf(c.From).Cmp(amount) < 0 {
				return errors.New("_amount should be greater than zero")
			}
			ethAmount, cdAmount := TokensAfterRemove(amount, c.Balance(exchangeAddr), w.cdOf(exchangeAddr), w.lpSupply)
			w.lp[c.From] = new(big.Int).Sub(w.lpOf(c.From), amount)
			w.lpSupply = new(big.Int).Sub(w.lpSupply, amount)
			c.Pay(c.From, ethAmount)
			return w.transferCD(exchangeAddr, c.From, cdAmount)
		}).
		OnTransact("ethToCryptoDevToken", func(c *chaintest.Call) error {
			ethReserve := new(big.Int).Sub(c.Balance(exchangeAddr), c.Value)
			bought := helpers.AmountOut(c.Value, ethReserve, w.cdOf(exchangeAddr))
			if bought.Cmp(c.Args[0].(*big.Int)) < 0 {
				return errors.New("insufficient output amount")
			}
			return w.transferCD(exchangeAddr, c.From, bought)
		}).
		OnTransact("cryptoDevTokenToEth", func(c *chaintest.Call) error {
			sold, min := c.Args[0].(*big.Int), c.Args[1].(*big.Int)
			bought := helpers.AmountOut(sold, w.cdOf(exchangeAddr), c.Balance(exchangeAddr))
			if bought.Cmp(min) < 0 {
				return errors.New("insufficient output amount")
			}
			if err := w.pullCD(c.From, sold); err != nil {
				return err
			}
			c.Pay(c.From, bought)
			return nil
		})
}

func (w *world) deployDAO() {
	w.b.Deploy(daoAddr, contracts.CryptoDevsDAO).
		OnCall("owner", func(common.Address, []any) ([]any, error) { return ret(w.owner) }).
		OnCall("numProposals", func(common.Address, []any) ([]any, error) {
			return ret(big.NewInt(int64(len(w.proposals))))
		}).
		OnCall("proposals", func(_ common.Address, args []any) ([]any, error) {
			i := args[0].(*big.Int).Int64()
			if i < 0 || i >= int64(len(w.proposals)) {
				return ret(new(big.Int), new(big.Int), new(big.Int), new(big.Int), false)
			}
			p := w.proposals[i]
			return ret(p.tokenID, big.NewInt(p.deadline), p.yay, p.nay, p.executed)
		}).
		OnTransact("createProposal", func(c *chaintest.Call) error {
			if w.nftBalance(c.From) == 0 {
				return errors.New("NOT_A_DAO_MEMBER")
			}
			w.proposals = append(w.proposals, &proposal{
				tokenID:  new(big.Int).Set(c.Args[0].(*big.Int)),
				deadline: w.now() + 5*60,
				yay:      new(big.Int),
				nay:      new(big.Int),
				voted:    map[common.Address]bool{},
			})
			return nil
		}).
		OnTransact("voteOnProposal", func(c *chaintest.Call) error {
			p := w.proposals[c.Args[0].(*big.Int).Int64()]
			if p.deadline <= w.now() {
				return errors.New("DEADLINE_EXCEEDED")
			}
			power := w.nftBalance(c.From)
			if power == 0 || p.voted[c.From] {
				return errors.New("ALREADY_VOTED")
			}
			p.voted[c.From] = true
			if Vote(c.Args[1].(uint8)) == VoteYay {
				p.yay = new(big.Int).Add(p.yay, big.NewInt(power))
			} else {
				p.nay = new(big.Int).Add(p.nay, big.NewInt(power))
			}
			return nil
		}).
		OnTransact("executeProposal", func(c *chaintest.Call) error {
			p := w.proposals[c.Args[0].(*big.Int).Int64()]
			if p.deadline > w.now() {
				return errors.New("DEADLINE_NOT_EXCEEDED")
			}
			if p.executed {
				return errors.New("PROPOSAL_ALREADY_EXECUTED")
			}
			if p.yay.Cmp(p.nay) > 0 {
				if c.Balance(daoAddr).Cmp(nftPrice) < 0 {
					return errors.New("NOT_ENOUGH_FUNDS")
				}
				c.Pay(marketplaceAddr, nftPrice)
			}
			p.executed = true
			return nil
		}).
		OnTransact("withdrawEther", func(c *chaintest.Call) error {
			if c.From != w.owner {
				return errors.New("Ownable: caller is not the owner")
			}
			bal := c.Balance(daoAddr)
			if bal.Sign() == 0 {
				return errors.New("Nothing to withdraw, contract balance empty")
			}
			c.Pay(w.owner, bal)
			return nil
		})
}
