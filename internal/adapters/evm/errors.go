package evm

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/musdomains/domains/internal/domain"
	"github.com/musdomains/domains/internal/registry"
)

// customErrors maps the contract's custom errors onto registry sentinels
var customErrors = map[string]error{
	"Unauthorized":      registry.ErrUnauthorized,
	"AlreadyRegistered": registry.ErrAlreadyRegistered,
	"InvalidName":       registry.ErrInvalidName,
}

// decodeRevert turns a failed call into a registry error when the node
// returned revert data the contract ABI knows. Other errors pass through.
func decodeRevert(parsed abi.ABI, op, name string, err error) error {
	if err == nil {
		return nil
	}

	data, ok := revertData(err)
	if !ok {
		if reason, found := strings.CutPrefix(err.Error(), "execution reverted: "); found {
			return reasonError(op, name, reason)
		}
		return err
	}

	if len(data) >= 4 {
		for errName, sentinel := range customErrors {
			abiErr, ok := parsed.Errors[errName]
			if !ok {
				continue
			}
			if bytes.Equal(data[:4], abiErr.ID.Bytes()[:4]) {
				return &registry.OpError{Op: op, Name: name, Err: sentinel}
			}
		}
	}

	if reason, uerr := abi.UnpackRevert(data); uerr == nil {
		return reasonError(op, name, reason)
	}
	return fmt.Errorf("%s %q: %w (data %s)", op, name, domain.ErrReverted, hexutil.Encode(data))
}

// reasonError classifies a require() message
func reasonError(op, name, reason string) error {
	lower := strings.ToLower(reason)
	switch {
	case strings.Contains(lower, "paid") || strings.Contains(lower, "payment") || strings.Contains(lower, "not enough"):
		return &registry.OpError{Op: op, Name: name, Err: fmt.Errorf("%w: %s", registry.ErrInsufficientPayment, reason)}
	case strings.Contains(lower, "already"):
		return &registry.OpError{Op: op, Name: name, Err: fmt.Errorf("%w: %s", registry.ErrAlreadyRegistered, reason)}
	case strings.Contains(lower, "owner") || strings.Contains(lower, "unauthorized"):
		return &registry.OpError{Op: op, Name: name, Err: fmt.Errorf("%w: %s", registry.ErrUnauthorized, reason)}
	}
	return fmt.Errorf("%s %q: %w: %s", op, name, domain.ErrReverted, reason)
}

func revertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	switch v := dataErr.ErrorData().(type) {
	case string:
		data, derr := hexutil.Decode(v)
		if derr != nil {
			return nil, false
		}
		return data, true
	case []byte:
		return v, true
	}
	return nil, false
}
