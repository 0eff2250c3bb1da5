package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v2"
)

// Registry contract ABI. The backend only touches the two write calls, the
// creators view and the CreatorSigned event; the rest of the contract surface
// is irrelevant here.
const registryABI = `[
	{"type":"function","name":"signCreator","stateMutability":"nonpayable","inputs":[{"name":"creator","type":"address"},{"name":"name","type":"string"}],"outputs":[]},
	{"type":"function","name":"recordArtifact","stateMutability":"nonpayable","inputs":[{"name":"creator","type":"address"},{"name":"title","type":"string"},{"name":"description","type":"string"},{"name":"mediaRef","type":"string"}],"outputs":[]},
	{"type":"function","name":"creators","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"name","type":"string"},{"name":"signed","type":"bool"}]},
	{"type":"event","name":"CreatorSigned","anonymous":false,"inputs":[{"name":"creator","type":"address","indexed":true}]}
]`

// eventCreatorSigned is the subscribed contract event name.
const eventCreatorSigned = "CreatorSigned"

// ContractDeployment describes where the registry contract lives.
type ContractDeployment struct {
	Address string `yaml:"address"`
	ChainId int64  `yaml:"chain_id"`
}

type deploymentFile struct {
	Contract ContractDeployment `yaml:"contract"`
}

// LoadContractDeployment reads the deployment descriptor from a YAML file.
func LoadContractDeployment(contractFile string) (*ContractDeployment, error) {
	var contractPath string
	if filepath.IsAbs(contractFile) {
		contractPath = contractFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		contractPath = filepath.Join(wd, contractFile)
	}

	data, err := os.ReadFile(contractPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", contractFile, err)
	}

	var parsed deploymentFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", contractFile, err)
	}

	if !common.IsHexAddress(parsed.Contract.Address) {
		return nil, fmt.Errorf("invalid contract address %q in %s", parsed.Contract.Address, contractFile)
	}
	if parsed.Contract.ChainId <= 0 {
		return nil, fmt.Errorf("missing or invalid chain_id in %s", contractFile)
	}

	return &parsed.Contract, nil
}

// IsCanonicalAddress reports whether s is a canonical 42-character 0x-prefixed
// hex wallet address. No ledger action may be attempted for anything else.
func IsCanonicalAddress(s string) bool {
	return len(s) == 42 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && common.IsHexAddress(s)
}
