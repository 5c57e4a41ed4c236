package usecase

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/ethereum"
	"github.com/auctra/goapi/domain"
	"github.com/auctra/goapi/domain/keys"
	"github.com/auctra/goapi/service/redis"
)

const (
	nonceRange = int32(9999999)
	nonceTTL   = 10 * time.Minute
	tokenTTL   = 24 * time.Hour
)

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	cache        redis.Service
}

func New(jwtSecret, signatureMsg string, cache redis.Service) domain.AuthUsecase {
	return &impl{
		jwtSecret:    []byte(jwtSecret),
		signatureMsg: signatureMsg,
		cache:        cache,
	}
}

func (im *impl) nonceKey(address domain.Address) string {
	return keys.RedisKey(keys.PfxAuthNonce, string(address.ToLower()))
}

func (im *impl) GenerateNonce(c ctx.Ctx, address domain.Address) (string, error) {
	nonce := strconv.Itoa(int(rand.Int31n(nonceRange)))
	if err := im.cache.Set(c, im.nonceKey(address), []byte(nonce), nonceTTL); err != nil {
		c.WithField("err", err).Error("cache.Set failed")
		return "", err
	}
	return nonce, nil
}

func (im *impl) SignToken(c ctx.Ctx, address domain.Address, signature string) (string, error) {
	key := im.nonceKey(address)
	nonce, err := im.cache.Get(c, key)
	if err != nil {
		if err == redis.ErrNotFound {
			return "", domain.ErrInvalidNonce
		}
		c.WithField("err", err).Error("cache.Get failed")
		return "", err
	}

	msg := []byte(fmt.Sprintf(im.signatureMsg, string(nonce)))
	if ok, err := ethereum.ValidateMsgSignature(msg, signature, string(address)); err != nil {
		c.WithField("err", err).Warn("ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	// burn the nonce regardless of what happens next
	if err := im.cache.Del(c, key); err != nil {
		c.WithField("err", err).Error("cache.Del failed")
		return "", err
	}

	claims := domain.JwtCustomClaims{
		Address: string(address.ToLower()),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(c ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}
	return "", domain.ErrUnauthorized
}
