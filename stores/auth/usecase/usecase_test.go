package usecase

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/service/redis"
)

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(c ctx.Ctx, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return v, nil
}

func (f *fakeCache) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Del(c ctx.Ctx, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Incr(c ctx.Ctx, key string) (int64, error) {
	return 0, nil
}

func (f *fakeCache) TTL(c ctx.Ctx, key string) (time.Duration, error) {
	if _, ok := f.data[key]; !ok {
		return 0, redis.ErrNotFound
	}
	return 0, nil
}

const signatureMsg = "sign in with nonce: %s"

func TestNonceSignAndParse(t *testing.T) {
	c := ctx.Background()
	cache := newFakeCache()
	u := New("jwt-secret", signatureMsg, cache)

	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex()))

	nonce, err := u.GenerateNonce(c, address)
	assert.NoError(t, err)
	assert.NotEmpty(t, nonce)

	msg := []byte(fmt.Sprintf(signatureMsg, nonce))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	assert.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	tkn, err := u.SignToken(c, address, hexutil.Encode(sig))
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)

	ads, err := u.ParseToken(c, tkn)
	assert.NoError(t, err)
	assert.Equal(t, string(address), ads)

	// the nonce is single use
	_, err = u.SignToken(c, address, hexutil.Encode(sig))
	assert.Equal(t, domain.ErrInvalidNonce, err)
}

func TestSignTokenWrongKey(t *testing.T) {
	c := ctx.Background()
	cache := newFakeCache()
	u := New("jwt-secret", signatureMsg, cache)

	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	otherKey, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex()))

	nonce, err := u.GenerateNonce(c, address)
	assert.NoError(t, err)

	msg := []byte(fmt.Sprintf(signatureMsg, nonce))
	sig, err := crypto.Sign(accounts.TextHash(msg), otherKey)
	assert.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	_, err = u.SignToken(c, address, hexutil.Encode(sig))
	assert.Equal(t, domain.ErrInvalidSignature, err)
}

func TestSignTokenWithoutNonce(t *testing.T) {
	c := ctx.Background()
	u := New("jwt-secret", signatureMsg, newFakeCache())

	_, err := u.SignToken(c, "0x00000000000000000000000000000000000000aa", "0x00")
	assert.Equal(t, domain.ErrInvalidNonce, err)
}

func TestParseTokenGarbage(t *testing.T) {
	c := ctx.Background()
	u := New("jwt-secret", signatureMsg, newFakeCache())

	_, err := u.ParseToken(c, "not-a-token")
	assert.Error(t, err)
}
