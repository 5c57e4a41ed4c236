package keys

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"

	"github.com/auctra/goapi/domain"
)

// Seed kinds for canonical account derivation. Every entity record lives at
// an address derived from its kind and owner seeds, so lookups can prove they
// hit the unique canonical record for that key.
const (
	KindDealer       = "dealer"
	KindAsset        = "asset"
	KindAuction      = "auction"
	KindVault        = "vault"
	KindParticipated = "participated"
	KindActive       = "active"
	KindPlatform     = "platform"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxAuthNonce is used for prefixing auth nonce redis key
	PfxAuthNonce = "authnonce"
)

var ErrNoCanonicalBump = xerrors.New("keys: no canonical bump found")

// Derive returns the canonical address for (kind, seeds...) together with the
// disambiguation bump that produced it. The bump is searched from 255
// downward; a candidate is rejected when its digest starts with a zero byte,
// which keeps derivation deterministic while leaving room to step past
// collisions. Entities persist their bump so lookups can re-derive and prove
// canonicality via Verify.
func Derive(kind string, seeds ...string) (domain.Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		h := digest(kind, seeds, uint8(bump))
		if h[0] == 0 {
			continue
		}
		return toAddress(h), uint8(bump), nil
	}
	return domain.EmptyAddress, 0, ErrNoCanonicalBump
}

// Verify re-derives the address for (kind, seeds..., bump) and reports
// whether it matches the stored one. A mismatch means the record is not the
// canonical one for its key.
func Verify(addr domain.Address, bump uint8, kind string, seeds ...string) bool {
	h := digest(kind, seeds, bump)
	if h[0] == 0 {
		return false
	}
	return toAddress(h).Equals(addr)
}

func digest(kind string, seeds []string, bump uint8) []byte {
	parts := make([][]byte, 0, len(seeds)+2)
	parts = append(parts, []byte(kind))
	for _, s := range seeds {
		parts = append(parts, []byte(strings.ToLower(s)))
	}
	parts = append(parts, []byte{bump})
	return crypto.Keccak256(parts...)
}

func toAddress(h []byte) domain.Address {
	return domain.Address(strings.ToLower(common.BytesToAddress(h[12:]).Hex()))
}

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}
