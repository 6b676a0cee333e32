package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenConfig 会话 Token 配置
// Secret 为空时退化为不透明的时间戳 Token（与线上 mock 行为一致）
type SessionTokenConfig struct {
	Secret string        // JWT 签名密钥
	TTL    time.Duration // Token 有效期
}

// Defaults 填充默认值
func (c *SessionTokenConfig) Defaults() {
	if c.TTL <= 0 {
		c.TTL = 7 * 24 * time.Hour // 默认7天
	}
}

// SessionClaims 会话 Token Claims
type SessionClaims struct {
	Account string `json:"account"`
	CardNo  string `json:"card_no,omitempty"`
	jwt.RegisteredClaims
}

// GenerateSessionToken issues a bearer token for the given account. With a
// configured secret it is a signed HS256 JWT; without one it is the opaque
// "mock-token-<ms>" form the backend contract tolerates.
func GenerateSessionToken(account, cardNo string, cfg SessionTokenConfig) (string, error) {
	cfg.Defaults()
	if cfg.Secret == "" {
		return fmt.Sprintf("mock-token-%d", time.Now().UnixMilli()), nil
	}

	now := time.Now()
	claims := SessionClaims{
		Account: account,
		CardNo:  cardNo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenStr, nil
}

// VerifySessionToken 验证会话 Token 的签名与有效期
func VerifySessionToken(tokenStr string, cfg SessionTokenConfig) (*SessionClaims, error) {
	cfg.Defaults()
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ParseSessionTokenUnverified 解析 Token 但不验证（用于调试或获取 claims）
func ParseSessionTokenUnverified(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(tokenStr, claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
