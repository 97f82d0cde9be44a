package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
)

// Signer issues and verifies HMAC-SHA256 signed bearer tokens. The token
// value carries the user id and an absolute expiry; tampering with either
// invalidates the signature.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a token in the format "base64(userID:expiry)|base64(signature)".
func (s *Signer) Issue(userID string) string {
	value := fmt.Sprintf("%s:%d", userID, time.Now().Add(s.ttl).Unix())
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))
	signature := mac.Sum(nil)
	return base64.URLEncoding.EncodeToString([]byte(value)) + "|" + base64.URLEncoding.EncodeToString(signature)
}

// Verify checks the signature and expiry and returns the embedded user id.
func (s *Signer) Verify(token string) (string, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 2 {
		return "", ErrInvalidToken
	}

	valueBytes, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalidToken
	}
	signature, err := base64.URLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidToken
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(valueBytes)
	if !hmac.Equal(signature, mac.Sum(nil)) {
		return "", ErrInvalidToken
	}

	value := string(valueBytes)
	sep := strings.LastIndex(value, ":")
	if sep < 0 {
		return "", ErrInvalidToken
	}
	userID := value[:sep]
	expiry, err := strconv.ParseInt(value[sep+1:], 10, 64)
	if err != nil || userID == "" {
		return "", ErrInvalidToken
	}
	if time.Now().Unix() > expiry {
		return "", ErrExpiredToken
	}
	return userID, nil
}
