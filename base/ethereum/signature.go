package ethereum

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidateMsgSignature checks that `signature` over the personal-sign hash of
// `message` was produced by `signer`.
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	hash := accounts.TextHash(message)
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, err
	}
	recovered, err := ecRecover(hash, sig)
	if err != nil {
		return false, err
	}
	return bytes.Equal(common.HexToAddress(signer).Bytes(), recovered.Bytes()), nil
}

// ecRecover returns the address of the account that created the signature,
// accepting both 0/1 and 27/28 encodings of the recovery id.
func ecRecover(hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] != 0 && sig[crypto.RecoveryIDOffset] != 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id")
	}
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
