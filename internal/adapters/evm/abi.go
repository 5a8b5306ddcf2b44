package evm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DomainsABI is the interface of the Domains registry contract.
const DomainsABI = `[
  {"type":"constructor","stateMutability":"payable","inputs":[{"name":"_tld","type":"string"}]},
  {"type":"function","name":"register","stateMutability":"payable","inputs":[{"name":"name","type":"string"}],"outputs":[]},
  {"type":"function","name":"setRecord","stateMutability":"nonpayable","inputs":[{"name":"name","type":"string"},{"name":"record","type":"string"}],"outputs":[]},
  {"type":"function","name":"getAddress","stateMutability":"view","inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"getRecord","stateMutability":"view","inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"price","stateMutability":"pure","inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getAllNames","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string[]"}]},
  {"type":"function","name":"valid","stateMutability":"pure","inputs":[{"name":"name","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"isOwner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"tld","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"error","name":"Unauthorized","inputs":[]},
  {"type":"error","name":"AlreadyRegistered","inputs":[]},
  {"type":"error","name":"InvalidName","inputs":[{"name":"name","type":"string"}]}
]`

// ParseDomainsABI parses DomainsABI.
func ParseDomainsABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(DomainsABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse Domains ABI: %w", err)
	}
	return parsed, nil
}

// Artifact is a compiled contract as written by Hardhat or Foundry
type Artifact struct {
	ABI      abi.ABI
	Bytecode []byte
}

type artifactFile struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode json.RawMessage `json:"bytecode"`
}

// LoadArtifact reads a compiled contract. Hardhat stores the bytecode as a hex
// string, Foundry as {"object": "0x..."}.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(file.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}

	parsed, err := abi.JSON(strings.NewReader(string(file.ABI)))
	if err != nil {
		return nil, fmt.Errorf("invalid abi in %s: %w", path, err)
	}

	code, err := decodeBytecode(file.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", path, err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", path)
	}

	return &Artifact{ABI: parsed, Bytecode: code}, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var hex string
	if err := json.Unmarshal(raw, &hex); err != nil {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		hex = obj.Object
	}

	if hex == "" || hex == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(hex, "0x") {
		hex = "0x" + hex
	}
	return hexutil.Decode(hex)
}
