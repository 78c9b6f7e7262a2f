// Package contracts holds the interface descriptors of the CryptoDevs contracts.
// Only the methods the pages and the deploy tool use are listed.
package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// WhitelistMetaData describes Whitelist.sol.
var WhitelistMetaData = &bind.MetaData{ABI: `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"_maxWhitelistedAddresses","type":"uint8"}]},
	{"type":"function","name":"maxWhitelistedAddresses","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"numAddressesWhitelisted","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"whitelistedAddresses","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"addAddressToWhitelist","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`}

// CryptoDevsMetaData describes the CryptoDevs ERC721 presale contract.
var CryptoDevsMetaData = &bind.MetaData{ABI: `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"baseURI","type":"string"},{"name":"whitelistContract","type":"address"}]},
	{"type":"function","name":"presaleStarted","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"presaleEnded","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"_paused","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"tokenIds","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"maxTokenIds","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"startPresale","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"presaleMint","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"mint","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"setPaused","stateMutability":"nonpayable","inputs":[{"name":"val","type":"bool"}],"outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`}

// CryptoDevTokenMetaData describes the CD ERC20 ICO contract.
var CryptoDevTokenMetaData = &bind.MetaData{ABI: `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"_cryptoDevsContract","type":"address"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"tokenIdsClaimed","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"claim","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"mint","stateMutability":"payable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`}

// ExchangeMetaData describes the CD/ETH constant product exchange. The
// exchange is itself the ERC20 of its LP tokens.
var ExchangeMetaData = &bind.MetaData{ABI: `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"_CryptoDevtoken","type":"address"}]},
	{"type":"function","name":"cryptoDevTokenAddress","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getReserve","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getAmountOfTokens","stateMutability":"pure","inputs":[{"name":"inputAmount","type":"uint256"},{"name":"inputReserve","type":"uint256"},{"name":"outputReserve","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"addLiquidity","stateMutability":"payable","inputs":[{"name":"_amount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"removeLiquidity","stateMutability":"nonpayable","inputs":[{"name":"_amount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"},{"name":"","type":"uint256"}]},
	{"type":"function","name":"ethToCryptoDevToken","stateMutability":"payable","inputs":[{"name":"_minTokens","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"cryptoDevTokenToEth","stateMutability":"nonpayable","inputs":[{"name":"_tokensSold","type":"uint256"},{"name":"_minEth","type":"uint256"}],"outputs":[]}
]`}

// FakeNFTMarketplaceMetaData describes the marketplace the DAO buys from.
var FakeNFTMarketplaceMetaData = &bind.MetaData{ABI: `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[]},
	{"type":"function","name":"getPrice","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"available","stateMutability":"view","inputs":[{"name":"_tokenId","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"purchase","stateMutability":"payable","inputs":[{"name":"_tokenId","type":"uint256"}],"outputs":[]}
]`}

// CryptoDevsDAOMetaData describes the DAO. Votes are the enum {YAY, NAY}.
var CryptoDevsDAOMetaData = &bind.MetaData{ABI: `[
	{"type":"constructor","stateMutability":"payable","inputs":[{"name":"_nftMarketplace","type":"address"},{"name":"_cryptoDevsNFT","type":"address"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"numProposals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"proposals","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[
		{"name":"nftTokenId","type":"uint256"},
		{"name":"deadline","type":"uint256"},
		{"name":"yayVotes","type":"uint256"},
		{"name":"nayVotes","type":"uint256"},
		{"name":"executed","type":"bool"}]},
	{"type":"function","name":"createProposal","stateMutability":"nonpayable","inputs":[{"name":"_nftTokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"voteOnProposal","stateMutability":"nonpayable","inputs":[{"name":"proposalIndex","type":"uint256"},{"name":"vote","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"executeProposal","stateMutability":"nonpayable","inputs":[{"name":"proposalIndex","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"withdrawEther","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`}

// Parsed descriptors, ready for chain.MakeHandle.
var (
	Whitelist          = mustParse(WhitelistMetaData)
	CryptoDevs         = mustParse(CryptoDevsMetaData)
	CryptoDevToken     = mustParse(CryptoDevTokenMetaData)
	Exchange           = mustParse(ExchangeMetaData)
	FakeNFTMarketplace = mustParse(FakeNFTMarketplaceMetaData)
	CryptoDevsDAO      = mustParse(CryptoDevsDAOMetaData)
)

func mustParse(md *bind.MetaData) *abi.ABI {
	parsed, err := md.GetAbi()
	if err != nil {
		panic(err)
	}
	return parsed
}
