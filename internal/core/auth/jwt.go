package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims 会话 cookie 内容
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// FlashClaims 一次性提示消息（跨一次重定向）
type FlashClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(uid string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Subject:   "session",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	return j.sign(claims)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	var c Claims
	if err := j.parse(tokenStr, &c, "session"); err != nil {
		return nil, err
	}
	if c.UID == "" {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

// IssueFlash 消息有效期 5 分钟，够一次跳转
func (j *JWTer) IssueFlash(msgs []string) (string, error) {
	now := time.Now()
	return j.sign(FlashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Subject:   "flash",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
		},
	})
}

func (j *JWTer) ParseFlash(tokenStr string) ([]string, error) {
	var c FlashClaims
	if err := j.parse(tokenStr, &c, "flash"); err != nil {
		return nil, err
	}
	return c.Messages, nil
}

func (j *JWTer) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) parse(tokenStr string, claims jwt.Claims, subject string) error {
	t, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithSubject(subject), jwt.WithLeeway(60*time.Second))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid {
		return ErrInvalidToken
	}
	return nil
}
