package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken returns an opaque session token and the sha256 hash
// stored server side. Only the hash ever touches the database.
func GenerateSessionToken(length int) (string, []byte, error) {
	if length <= 0 {
		length = 48
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buf)
	hash := HashSessionToken(token)
	return token, hash, nil
}

func HashSessionToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

type DownloadClaims struct {
	ApplicationID string `json:"app"`
	Bucket        string `json:"bkt"`
	ObjectKey     string `json:"key"`
	jwt.RegisteredClaims
}

// GenerateDownloadToken signs a short-lived link token for a stored resume.
func GenerateDownloadToken(secret string, applicationID string, bucket string, objectKey string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := DownloadClaims{
		ApplicationID: applicationID,
		Bucket:        bucket,
		ObjectKey:     objectKey,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   applicationID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign download token: %w", err)
	}
	return signed, nil
}

func ParseDownloadToken(tokenStr string, secret string) (*DownloadClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &DownloadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*DownloadClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
