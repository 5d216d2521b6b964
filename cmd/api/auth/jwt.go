package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ai-blog-generator/config"
)

// JWTManager 는 세션 쿠키에 담길 토큰을 HS256 단일 시크릿으로 발급/검증한다.
// 토큰의 sub 는 세션 ID 이고, 실제 로그인 상태는 세션 저장소가 결정한다.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager 는 AuthConfig 로 JWTManager 를 만든다.
// issuer 가 비어 있으면 "ai-blog-generator" 를 사용한다.
func NewJWTManager(cfg config.AuthConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	issuer := cfg.JWTIssuer
	if issuer == "" {
		issuer = "ai-blog-generator"
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}

	return &JWTManager{
		secret: []byte(cfg.JWTSecret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

func (m *JWTManager) Sign(sessionID, userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sessionID,
		"uid": userID,
		"iss": m.issuer,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse 는 서명과 만료, issuer 를 검증한 뒤 (sessionID, userID) 를 돌려준다.
func (m *JWTManager) Parse(tokenString string) (string, string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	uid, _ := claims["uid"].(string)
	if sub == "" {
		return "", "", fmt.Errorf("token missing sub claim")
	}

	return sub, uid, nil
}
