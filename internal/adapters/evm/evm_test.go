package evm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/domain/config"
	"github.com/musdomains/domains/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// revertError mimics the error a node returns for a reverted eth_call
type revertError struct {
	data string
}

func (e revertError) Error() string          { return "execution reverted" }
func (e revertError) ErrorData() interface{} { return e.data }

func customErrorData(t *testing.T, parsed abi.ABI, name string, args ...interface{}) string {
	t.Helper()
	abiErr := parsed.Errors[name]
	packed, err := abiErr.Inputs.Pack(args...)
	require.NoError(t, err)
	return hexutil.Encode(append(abiErr.ID.Bytes()[:4], packed...))
}

func reasonData(t *testing.T, reason string) string {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	selector := crypto.Keccak256([]byte("Error(string)"))[:4]
	return hexutil.Encode(append(selector, packed...))
}

func TestParseDomainsABI(t *testing.T) {
	parsed, err := ParseDomainsABI()
	require.NoError(t, err)

	for _, method := range []string{"register", "setRecord", "getAddress", "getRecord", "price", "getAllNames", "withdraw", "owner", "tld"} {
		assert.Contains(t, parsed.Methods, method)
	}
	assert.True(t, parsed.Methods["register"].IsPayable())
	for name := range customErrors {
		assert.Contains(t, parsed.Errors, name)
	}
}

func TestDecodeRevert(t *testing.T) {
	parsed, err := ParseDomainsABI()
	require.NoError(t, err)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "already registered",
			err:  revertError{customErrorData(t, parsed, "AlreadyRegistered")},
			want: registry.ErrAlreadyRegistered,
		},
		{
			name: "invalid name",
			err:  revertError{customErrorData(t, parsed, "InvalidName", "2")},
			want: registry.ErrInvalidName,
		},
		{
			name: "unauthorized",
			err:  fmt.Errorf("wrapped: %w", revertError{customErrorData(t, parsed, "Unauthorized")}),
			want: registry.ErrUnauthorized,
		},
		{
			name: "require message about payment",
			err:  revertError{reasonData(t, "Not enough Matic paid")},
			want: registry.ErrInsufficientPayment,
		},
		{
			name: "unknown revert data",
			err:  revertError{"0xdeadbeef"},
			want: domain.ErrReverted,
		},
		{
			name: "reason in message only",
			err:  errors.New("execution reverted: Not enough paid"),
			want: registry.ErrInsufficientPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeRevert(parsed, "register", "twice", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("non-revert errors pass through", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.Equal(t, cause, decodeRevert(parsed, "register", "twice", cause))
		assert.NoError(t, decodeRevert(parsed, "register", "twice", nil))
	})

	t.Run("kind survives decoding", func(t *testing.T) {
		got := decodeRevert(parsed, "withdraw", "", revertError{customErrorData(t, parsed, "Unauthorized")})
		assert.Equal(t, registry.KindUnauthorized, registry.KindOf(got))
	})
}

func TestLoadArtifact(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}
	abiJSON := `[{"type":"constructor","stateMutability":"payable","inputs":[{"name":"_tld","type":"string"}]}]`

	t.Run("hardhat", func(t *testing.T) {
		path := write("hardhat.json", `{"contractName":"Domains","abi":`+abiJSON+`,"bytecode":"0x6080604052"}`)
		art, err := LoadArtifact(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, art.Bytecode)
		assert.Len(t, art.ABI.Constructor.Inputs, 1)
	})

	t.Run("foundry", func(t *testing.T) {
		path := write("foundry.json", `{"abi":`+abiJSON+`,"bytecode":{"object":"0x6080"}}`)
		art, err := LoadArtifact(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, art.Bytecode)
	})

	t.Run("interface without bytecode", func(t *testing.T) {
		path := write("iface.json", `{"abi":`+abiJSON+`,"bytecode":"0x"}`)
		_, err := LoadArtifact(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadArtifact(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}

func TestParseKeys(t *testing.T) {
	const key = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

	_, addrs, err := parseKeys([]string{"0x" + key})
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", addrs[0].Hex())

	_, _, err = parseKeys([]string{""})
	assert.ErrorContains(t, err, "environment variable")

	_, _, err = parseKeys([]string{"zz"})
	assert.Error(t, err)
}

func TestExplorerLink(t *testing.T) {
	b, err := NewBackend(&config.Network{Name: "mumbai", Type: config.NetworkTypeRPC, RPCURL: "http://127.0.0.1:1", ExplorerURL: "https://mumbai.polygonscan.com/"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://mumbai.polygonscan.com/tx/0xabc", b.explorerLink("tx", "0xabc"))

	b, err = NewBackend(&config.Network{Name: "other", Type: config.NetworkTypeRPC, RPCURL: "http://127.0.0.1:1"}, "", nil)
	require.NoError(t, err)
	assert.Empty(t, b.explorerLink("tx", "0xabc"))
}

func TestNewBackendRequiresURL(t *testing.T) {
	_, err := NewBackend(&config.Network{Name: "mumbai", Type: config.NetworkTypeRPC}, "", nil)
	assert.Error(t, err)

	b, err := NewBackend(&config.Network{Name: "mumbai", Type: config.NetworkTypeRPC, RPCURL: "http://127.0.0.1:1"}, "", nil)
	require.NoError(t, err)
	accounts, err := b.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
