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
	"github.com/hashicorp/go-multierror"
)

// Vote mirrors the DAO's Vote enum.
type Vote uint8

const (
	VoteYay Vote = 0
	VoteNay Vote = 1
)

func (v Vote) String() string {
	if v == VoteNay {
		return "NAY"
	}
	return "YAY"
}

// DAOTab is the selected section of the DAO page.
type DAOTab int

const (
	TabCreateProposal DAOTab = iota
	TabViewProposals
)

func (t DAOTab) String() string {
	if t == TabViewProposals {
		return "View Proposals"
	}
	return "Create Proposal"
}

// ProposalState is what can be done with a proposal right now.
type ProposalState int

const (
	ProposalVoting ProposalState = iota
	ProposalExecutable
	ProposalExecuted
)

func (s ProposalState) String() string {
	switch s {
	case ProposalVoting:
		return "voting"
	case ProposalExecutable:
		return "executable"
	default:
		return "executed"
	}
}

// Proposal is one decoded entry of the DAO's proposals mapping.
type Proposal struct {
	ID         int64
	NFTTokenID *big.Int
	Deadline   time.Time
	YayVotes   *big.Int
	NayVotes   *big.Int
	Executed   bool
}

// State: voting until the deadline, then executable until executed.
func (p Proposal) State(now time.Time) ProposalState {
	switch {
	case p.Executed:
		return ProposalExecuted
	case p.Deadline.After(now):
		return ProposalVoting
	default:
		return ProposalExecutable
	}
}

// DAOSnapshot is everything the DAO page renders outside the proposal list.
type DAOSnapshot struct {
	Treasury     *big.Int
	NumProposals *big.Int
	NFTBalance   *big.Int
	IsOwner      bool
	Err          error
}

// CanCreate reports whether the user holds a CryptoDev and may propose.
func (s DAOSnapshot) CanCreate() bool {
	return s.NFTBalance != nil && s.NFTBalance.Sign() > 0
}

// LoadDAO reads the treasury, proposal count, voting power and ownership.
func LoadDAO(ctx context.Context, env Env) (DAOSnapshot, error) {
	dao, err := env.reader(ctx, "dao", env.Contracts.DAO, contracts.CryptoDevsDAO)
	if err != nil {
		return DAOSnapshot{}, err
	}
	nft, err := env.reader(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs)
	if err != nil {
		return DAOSnapshot{}, err
	}

	r := env.reads()
	s := DAOSnapshot{
		Treasury:     chain.BalanceOr(ctx, r, env.Conn, dao.Address),
		NumProposals: chain.ReadOr(ctx, r, dao, new(big.Int), "numProposals"),
		NFTBalance:   chain.ReadOr(ctx, r, nft, new(big.Int), "balanceOf", env.Conn.Address()),
		IsOwner:      env.isOwner(chain.ReadOr(ctx, r, dao, common.Address{}, "owner")),
	}
	s.Err = r.Err()
	return s, nil
}

// FetchProposal reads proposals(id).
func FetchProposal(ctx context.Context, dao *chain.Handle, id int64) (Proposal, error) {
	out, err := chain.ReadAll(ctx, dao, "proposals", big.NewInt(id))
	if err != nil {
		return Proposal{}, err
	}
	if len(out) != 5 {
		return Proposal{}, fmt.Errorf("%w: proposals(%d): %d outputs", chain.ErrReadFailure, id, len(out))
	}
	var nums [4]*big.Int
	for i := range nums {
		v, ok := out[i].(*big.Int)
		if !ok {
			return Proposal{}, fmt.Errorf("%w: proposals(%d): output %d has type %T", chain.ErrReadFailure, id, i, out[i])
		}
		nums[i] = v
	}
	executed, ok := out[4].(bool)
	if !ok {
		return Proposal{}, fmt.Errorf("%w: proposals(%d): output 4 has type %T", chain.ErrReadFailure, id, out[4])
	}
	p := Proposal{
		ID:         id,
		NFTTokenID: nums[0],
		Deadline:   time.Unix(nums[1].Int64(), 0),
		YayVotes:   nums[2],
		NayVotes:   nums[3],
		Executed:   executed,
	}
	return p, nil
}

// FetchProposals reads proposals 0..n-1 in order. Rows that fail to read are
// skipped and reported in the returned error next to the rows that loaded.
func FetchProposals(ctx context.Context, env Env, n int64) ([]Proposal, error) {
	dao, err := env.reader(ctx, "dao", env.Contracts.DAO, contracts.CryptoDevsDAO)
	if err != nil {
		return nil, err
	}
	var (
		proposals []Proposal
		errs      *multierror.Error
	)
	for i := int64(0); i < n; i++ {
		p, err := FetchProposal(ctx, dao, i)
		if err != nil {
			env.logger().Error("read failed", "quantity", "proposal", "id", i, "err", err)
			errs = multierror.Append(errs, err)
			continue
		}
		proposals = append(proposals, p)
	}
	return proposals, errs.ErrorOrNil()
}

// CreateProposal proposes buying the marketplace NFT tokenID.
func CreateProposal(ctx context.Context, env Env, tokenID *big.Int) (*types.Receipt, error) {
	if tokenID == nil || tokenID.Sign() < 0 {
		return nil, ErrInvalidTokenID
	}
	return env.send(ctx, "dao", env.Contracts.DAO, contracts.CryptoDevsDAO, nil, "createProposal", tokenID)
}

// VoteOnProposal casts the caller's votes, one per CryptoDev held.
func VoteOnProposal(ctx context.Context, env Env, id int64, vote Vote) (*types.Receipt, error) {
	return env.send(ctx, "dao", env.Contracts.DAO, contracts.CryptoDevsDAO, nil, "voteOnProposal", big.NewInt(id), uint8(vote))
}

// ExecuteProposal settles a proposal after its deadline.
func ExecuteProposal(ctx context.Context, env Env, id int64) (*types.Receipt, error) {
	return env.send(ctx, "dao", env.Contracts.DAO, contracts.CryptoDevsDAO, nil, "executeProposal", big.NewInt(id))
}

// WithdrawDAO drains the treasury to the owner.
func WithdrawDAO(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "dao", env.Contracts.DAO, contracts.CryptoDevsDAO, nil, "withdrawEther")
}
