package main

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"math/big"

	"cryptodevs-tui/config"
	"cryptodevs-tui/contracts"
	"cryptodevs-tui/rpc"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Artifact names as produced by `npx hardhat compile`.
const (
	artifactWhitelist   = "Whitelist"
	artifactNFT         = "CryptoDevs"
	artifactToken       = "CryptoDevToken"
	artifactExchange    = "Exchange"
	artifactMarketplace = "FakeNFTMarketplace"
	artifactDAO         = "CryptoDevsDAO"
)

var errReverted = errors.New("deployment reverted")

var (
	printGreen  = color.New(color.FgGreen).SprintFunc()
	printYellow = color.New(color.FgYellow).SprintFunc()
)

// deployment is one published contract
type deployment struct {
	Name    string
	Address common.Address
	TxHash  common.Hash
	Block   uint64
}

type deployer struct {
	backend   rpc.Backend
	key       *ecdsa.PrivateKey
	chainID   *big.Int
	artifacts string
	log       *log.Logger
	out       io.Writer

	done []deployment
}

// deploy publishes the named artifact with constructor args and waits for
// its receipt.
func (d *deployer) deploy(ctx context.Context, name string, value *big.Int, args ...any) (deployment, error) {
	path, err := contracts.FindArtifact(d.artifacts, name)
	if err != nil {
		return deployment{}, err
	}
	art, err := contracts.LoadArtifact(path)
	if err != nil {
		return deployment{}, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(d.key, d.chainID)
	if err != nil {
		return deployment{}, fmt.Errorf("signer: %w", err)
	}
	opts.Context = ctx
	opts.Value = value

	d.log.Info("deploying", "contract", name, "from", opts.From.Hex())
	addr, tx, _, err := bind.DeployContract(opts, art.ABI, art.Code(), d.backend, args...)
	if err != nil {
		return deployment{}, fmt.Errorf("deploy %s: %w", name, err)
	}
	d.log.Debug("submitted", "contract", name, "tx", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, d.backend, tx)
	if err != nil {
		return deployment{}, fmt.Errorf("deploy %s: wait: %w", name, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return deployment{}, fmt.Errorf("deploy %s: %w (tx %s)", name, errReverted, tx.Hash().Hex())
	}
	if receipt.ContractAddress != (common.Address{}) {
		addr = receipt.ContractAddress
	}

	dep := deployment{Name: name, Address: addr, TxHash: tx.Hash(), Block: receipt.BlockNumber.Uint64()}
	d.done = append(d.done, dep)
	fmt.Fprintf(d.out, "%s deployed to: %s\n", name, printGreen(addr.Hex()))
	return dep, nil
}

func (d *deployer) whitelist(ctx context.Context, maxAddresses uint8) (deployment, error) {
	return d.deploy(ctx, artifactWhitelist, nil, maxAddresses)
}

func (d *deployer) nft(ctx context.Context, metadataURL string, whitelist common.Address) (deployment, error) {
	return d.deploy(ctx, artifactNFT, nil, metadataURL, whitelist)
}

func (d *deployer) token(ctx context.Context, nft common.Address) (deployment, error) {
	return d.deploy(ctx, artifactToken, nil, nft)
}

func (d *deployer) exchange(ctx context.Context, token common.Address) (deployment, error) {
	return d.deploy(ctx, artifactExchange, nil, token)
}

// dao deploys the marketplace the DAO buys from, then the DAO itself funded
// with treasury.
func (d *deployer) dao(ctx context.Context, nft common.Address, treasury *big.Int) (deployment, error) {
	market, err := d.deploy(ctx, artifactMarketplace, nil)
	if err != nil {
		return deployment{}, err
	}
	return d.deploy(ctx, artifactDAO, treasury, market.Address, nft)
}

// record writes every deployment the TUI knows about into cfg
func (d *deployer) record(cfg *config.Config) {
	for _, dep := range d.done {
		addr := dep.Address.Hex()
		switch dep.Name {
		case artifactWhitelist:
			cfg.Contracts.Whitelist = addr
		case artifactNFT:
			cfg.Contracts.NFT = addr
		case artifactToken:
			cfg.Contracts.Token = addr
		case artifactExchange:
			cfg.Contracts.Exchange = addr
		case artifactDAO:
			cfg.Contracts.DAO = addr
		}
	}
}

// summary prints the deployments of this run as a table
func (d *deployer) summary() {
	if len(d.done) == 0 {
		fmt.Fprintln(d.out, printYellow("nothing deployed"))
		return
	}
	table := tablewriter.NewWriter(d.out)
	table.SetHeader([]string{"Contract", "Address", "Block", "Transaction"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, dep := range d.done {
		table.Append([]string{dep.Name, dep.Address.Hex(), fmt.Sprint(dep.Block), dep.TxHash.Hex()})
	}
	table.Render()
}
