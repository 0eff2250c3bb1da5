package ledger

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDeploymentFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write deployment file: %v", err)
	}
	return path
}

func TestLoadContractDeployment(t *testing.T) {
	path := writeDeploymentFile(t, `
contract:
  address: "0x5d74964890B3480578283b71e0a02Cf1bF380Aad"
  chain_id: 11155111
`)

	deployment, err := LoadContractDeployment(path)
	if err != nil {
		t.Fatalf("LoadContractDeployment failed: %v", err)
	}
	if deployment.Address != "0x5d74964890B3480578283b71e0a02Cf1bF380Aad" {
		t.Errorf("Unexpected address: %s", deployment.Address)
	}
	if deployment.ChainId != 11155111 {
		t.Errorf("Unexpected chain id: %d", deployment.ChainId)
	}
}

func TestLoadContractDeployment_InvalidAddress(t *testing.T) {
	path := writeDeploymentFile(t, `
contract:
  address: "not-an-address"
  chain_id: 1
`)

	if _, err := LoadContractDeployment(path); err == nil {
		t.Fatal("Expected error for invalid contract address")
	}
}

func TestLoadContractDeployment_MissingChainId(t *testing.T) {
	path := writeDeploymentFile(t, `
contract:
  address: "0x5d74964890B3480578283b71e0a02Cf1bF380Aad"
`)

	if _, err := LoadContractDeployment(path); err == nil {
		t.Fatal("Expected error for missing chain id")
	}
}

func TestIsCanonicalAddress(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0x5d74964890B3480578283b71e0a02Cf1bF380Aad", true},
		{"0x5d74964890b3480578283b71e0a02cf1bf380aad", true},
		{"5d74964890B3480578283b71e0a02Cf1bF380Aad", false},  // missing prefix
		{"0x5d74964890B3480578283b71e0a02Cf1bF380Aa", false}, // 41 chars
		{"", false},
		{"0xZZ74964890B3480578283b71e0a02Cf1bF380Aad", false},
	}
	for _, tt := range tests {
		if got := IsCanonicalAddress(tt.input); got != tt.want {
			t.Errorf("IsCanonicalAddress(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
