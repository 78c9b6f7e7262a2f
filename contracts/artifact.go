package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact is a compiled contract as written by `npx hardhat compile`.
type Artifact struct {
	ContractName string          `json:"contractName"`
	RawABI       json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`

	ABI abi.ABI `json:"-"`
}

// Code returns the deployment bytecode.
func (a *Artifact) Code() []byte { return common.FromHex(a.Bytecode) }

// LoadArtifact reads and parses a hardhat artifact file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	if len(art.Bytecode) <= 2 {
		return nil, fmt.Errorf("artifact %s: no bytecode (abstract contract or interface?)", path)
	}
	parsed, err := abi.JSON(bytes.NewReader(art.RawABI))
	if err != nil {
		return nil, fmt.Errorf("artifact %s: abi: %w", path, err)
	}
	art.ABI = parsed
	return &art, nil
}

// FindArtifact locates <name>.json under a hardhat artifacts directory, where
// it lives at contracts/<File>.sol/<name>.json.
func FindArtifact(dir, name string) (string, error) {
	var found string
	errFound := errors.New("found")
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name+".json" && filepath.Base(filepath.Dir(path)) != "build-info" {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("artifact %s not found under %s", name, dir)
	}
	return found, nil
}
