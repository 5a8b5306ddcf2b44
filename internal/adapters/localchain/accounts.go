package localchain

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// DefaultMnemonic is the well-known development phrase used by Hardhat and
// anvil. Never fund its accounts on a real network.
const DefaultMnemonic = "test test test test test test test test test test test junk"

// basePath is m/44'/60'/0'/0, the Ethereum account path wallets derive from
var basePath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
}

// DeriveKeys derives the keys at m/44'/60'/0'/0/i for i in [0, count)
func DeriveKeys(mnemonic string, count int) ([]*ecdsa.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	account := master
	for _, segment := range basePath {
		if account, err = account.Derive(segment); err != nil {
			return nil, fmt.Errorf("failed to derive account path: %w", err)
		}
	}

	keys := make([]*ecdsa.PrivateKey, 0, count)
	for i := 0; i < count; i++ {
		key, err := deriveKey(account, uint32(i))
		if err != nil {
			return nil, fmt.Errorf("failed to derive account %d: %w", i, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func deriveKey(account *hdkeychain.ExtendedKey, index uint32) (*ecdsa.PrivateKey, error) {
	child, err := account.Derive(index)
	if err != nil {
		return nil, err
	}
	priv, err := child.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return crypto.ToECDSA(priv.Serialize())
}

// DeriveAddresses derives the addresses of count development accounts.
func DeriveAddresses(mnemonic string, count int) ([]common.Address, error) {
	keys, err := DeriveKeys(mnemonic, count)
	if err != nil {
		return nil, err
	}
	addrs := make([]common.Address, len(keys))
	for i, key := range keys {
		addrs[i] = crypto.PubkeyToAddress(key.PublicKey)
	}
	return addrs, nil
}
