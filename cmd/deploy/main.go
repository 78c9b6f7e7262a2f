// Command deploy publishes the Crypto Devs contracts from hardhat artifacts
// and records their addresses in the TUI config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/config"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/rpc"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// metadataURL serves the NFT metadata the collection points at.
const metadataURL = "https://nft-collection-whitelist-dapp-five.vercel.app/api/"

// dial opens the node connection; tests replace it.
var dial = func(url string) (rpc.Backend, error) {
	res := rpc.Connect(url)
	if res.Error != nil {
		return nil, res.Error
	}
	return res.Client, nil
}

var (
	rpcFlag = &cli.StringFlag{
		Name:    "rpc",
		Usage:   "HTTP RPC endpoint of the target network",
		EnvVars: []string{"QUICKNODE_HTTP_URL", "ETH_RPC_URL"},
	}
	keyFlag = &cli.StringFlag{
		Name:    "private-key",
		Usage:   "hex private key of the deploying account",
		EnvVars: []string{"PRIVATE_KEY"},
	}
	keystoreFlag = &cli.StringFlag{
		Name:  "keystore",
		Usage: "keystore file used when no private key is given",
	}
	passwordFlag = &cli.StringFlag{
		Name:    "password",
		Usage:   "keystore password",
		EnvVars: []string{"KEYSTORE_PASSWORD"},
	}
	artifactsFlag = &cli.StringFlag{
		Name:  "artifacts",
		Usage: "hardhat artifacts directory",
		Value: "artifacts",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TUI config file",
		Value: defaultConfigPath(),
	}
	chainIDFlag = &cli.Uint64Flag{
		Name:  "chain-id",
		Usage: "expected chain id (default: the config's, Sepolia if unset)",
	}
	saveFlag = &cli.BoolFlag{
		Name:  "save",
		Usage: "write deployed addresses into the TUI config",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "debug logging",
	}

	maxFlag = &cli.UintFlag{
		Name:  "max",
		Usage: "maximum number of whitelisted addresses",
		Value: 10,
	}
	metadataFlag = &cli.StringFlag{
		Name:  "metadata-url",
		Usage: "base URI of the NFT metadata",
		Value: metadataURL,
	}
	whitelistFlag = &cli.StringFlag{Name: "whitelist", Usage: "whitelist contract (default: from config)"}
	nftFlag       = &cli.StringFlag{Name: "nft", Usage: "CryptoDevs NFT contract (default: from config)"}
	tokenFlag     = &cli.StringFlag{Name: "token", Usage: "CryptoDev token contract (default: from config)"}
	treasuryFlag  = &cli.StringFlag{
		Name:  "treasury",
		Usage: "ETH sent to the DAO on deployment",
		Value: "0.5",
	}
)

func defaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cryptodevs-config.json")
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w, ew io.Writer, args []string) error {
	// hardhat projects keep the endpoint and key in .env
	_ = godotenv.Load()

	app := &cli.App{
		Name:      "deploy",
		Usage:     "deploy the Crypto Devs contracts",
		Writer:    w,
		ErrWriter: ew,
		Flags: []cli.Flag{
			rpcFlag, keyFlag, keystoreFlag, passwordFlag,
			artifactsFlag, configFlag, chainIDFlag, saveFlag, verboseFlag,
		},
		Commands: []*cli.Command{
			{
				Name:  "whitelist",
				Usage: "deploy the Whitelist contract",
				Flags: []cli.Flag{maxFlag},
				Action: action(func(c *cli.Context, d *deployer, cfg config.Config) error {
					n, err := maxWhitelisted(c)
					if err != nil {
						return err
					}
					_, err = d.whitelist(c.Context, n)
					return err
				}),
			},
			{
				Name:  "nft",
				Usage: "deploy the CryptoDevs NFT collection",
				Flags: []cli.Flag{whitelistFlag, metadataFlag},
				Action: action(func(c *cli.Context, d *deployer, cfg config.Config) error {
					wl, err := address(c.String(whitelistFlag.Name), cfg.Contracts.Whitelist, "whitelist")
					if err != nil {
						return err
					}
					_, err = d.nft(c.Context, c.String(metadataFlag.Name), wl)
					return err
				}),
			},
			{
				Name:  "token",
				Usage: "deploy the CryptoDev ICO token",
				Flags: []cli.Flag{nftFlag},
				Action: action(func(c *cli.Context, d *deployer, cfg config.Config) error {
					nft, err := address(c.String(nftFlag.Name), cfg.Contracts.NFT, "nft")
					if err != nil {
						return err
					}
					_, err = d.token(c.Context, nft)
					return err
				}),
			},
			{
				Name:  "exchange",
				Usage: "deploy the ETH/CD exchange",
				Flags: []cli.Flag{tokenFlag},
				Action: action(func(c *cli.Context, d *deployer, cfg config.Config) error {
					token, err := address(c.String(tokenFlag.Name), cfg.Contracts.Token, "token")
					if err != nil {
						return err
					}
					_, err = d.exchange(c.Context, token)
					return err
				}),
			},
			{
				Name:  "dao",
				Usage: "deploy FakeNFTMarketplace and the CryptoDevs DAO",
				Flags: []cli.Flag{nftFlag, treasuryFlag},
				Action: action(func(c *cli.Context, d *deployer, cfg config.Config) error {
					nft, err := address(c.String(nftFlag.Name), cfg.Contracts.NFT, "nft")
					if err != nil {
						return err
					}
					treasury, err := helpers.ParseEther(c.String(treasuryFlag.Name))
					if err != nil {
						return fmt.Errorf("treasury: %w", err)
					}
					_, err = d.dao(c.Context, nft, treasury)
					return err
				}),
			},
			{
				Name:  "all",
				Usage: "deploy every contract in dependency order",
				Flags: []cli.Flag{maxFlag, metadataFlag, treasuryFlag},
				Action: action(func(c *cli.Context, d *deployer, cfg config.Config) error {
					n, err := maxWhitelisted(c)
					if err != nil {
						return err
					}
					treasury, err := helpers.ParseEther(c.String(treasuryFlag.Name))
					if err != nil {
						return fmt.Errorf("treasury: %w", err)
					}
					ctx := c.Context
					wl, err := d.whitelist(ctx, n)
					if err != nil {
						return err
					}
					nft, err := d.nft(ctx, c.String(metadataFlag.Name), wl.Address)
					if err != nil {
						return err
					}
					token, err := d.token(ctx, nft.Address)
					if err != nil {
						return err
					}
					if _, err := d.exchange(ctx, token.Address); err != nil {
						return err
					}
					_, err = d.dao(ctx, nft.Address, treasury)
					return err
				}),
			},
		},
	}
	return app.RunContext(ctx, args)
}

// action connects, runs fn, then prints the summary and saves what was
// deployed even when fn failed part way.
func action(fn func(c *cli.Context, d *deployer, cfg config.Config) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger := log.NewWithOptions(c.App.ErrWriter, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "deploy",
		})
		if c.Bool(verboseFlag.Name) {
			logger.SetLevel(log.DebugLevel)
		}

		cfgPath := c.String(configFlag.Name)
		cfg := config.Load(cfgPath)

		d, err := newDeployer(c, cfg, logger)
		if err != nil {
			return err
		}

		runErr := fn(c, d, cfg)
		d.summary()

		if c.Bool(saveFlag.Name) && len(d.done) > 0 {
			// reload so the run does not clobber edits made meanwhile
			cfg = config.Load(cfgPath)
			d.record(&cfg)
			if err := config.Save(cfgPath, cfg); err != nil {
				return errors.Join(runErr, fmt.Errorf("save config: %w", err))
			}
			logger.Info("saved addresses", "config", cfgPath)
		}
		return runErr
	}
}

func newDeployer(c *cli.Context, cfg config.Config, logger *log.Logger) (*deployer, error) {
	url := c.String(rpcFlag.Name)
	if url == "" {
		url = cfg.ActiveRPC()
	}
	if url == "" {
		return nil, errors.New("no RPC endpoint: set QUICKNODE_HTTP_URL or pass --rpc")
	}

	key, err := rpc.KeyFromHex(c.String(keyFlag.Name))
	if errors.Is(err, rpc.ErrNoKey) && c.String(keystoreFlag.Name) != "" {
		key, err = rpc.KeyFromKeystore(c.String(keystoreFlag.Name), c.String(passwordFlag.Name))
	}
	if err != nil {
		return nil, err
	}

	backend, err := dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}

	expected := cfg.ExpectedChainID()
	if c.IsSet(chainIDFlag.Name) {
		expected = c.Uint64(chainIDFlag.Name)
	}
	if err := chain.CheckNetwork(c.Context, backend, expected); err != nil {
		return nil, err
	}
	logger.Debug("connected", "rpc", url, "chain", chain.NetworkName(expected))

	return &deployer{
		backend:   backend,
		key:       key,
		chainID:   new(big.Int).SetUint64(expected),
		artifacts: c.String(artifactsFlag.Name),
		log:       logger,
		out:       c.App.Writer,
	}, nil
}

func maxWhitelisted(c *cli.Context) (uint8, error) {
	n := c.Uint(maxFlag.Name)
	if n == 0 || n > 255 {
		return 0, fmt.Errorf("--max must be between 1 and 255, got %d", n)
	}
	return uint8(n), nil
}

// address picks the flag value, else the configured one
func address(flagValue, configured, name string) (common.Address, error) {
	v := strings.TrimSpace(flagValue)
	if v == "" {
		v = strings.TrimSpace(configured)
	}
	if v == "" {
		return common.Address{}, fmt.Errorf("no %s address: pass --%s or deploy it first with --save", name, name)
	}
	if !helpers.IsValidEthAddress(v) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", name, v)
	}
	return common.HexToAddress(v), nil
}
