package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidToken is returned for malformed or tampered tokens.
	ErrInvalidToken = errors.New("invalid download token")
	// ErrTokenExpired is returned once a token's lifetime has passed.
	ErrTokenExpired = errors.New("download token expired")
)

// Grant is the content of a verified download token.
type Grant struct {
	ViewerID  string
	Path      string
	ExpiresAt time.Time
}

// SignedURLSigner creates and validates signed download tokens. A token binds
// a stored file to the user it was issued to.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SignedURLSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate returns a token allowing viewerID to download relPath.
func (s *SignedURLSigner) Generate(viewerID, relPath string) (string, time.Time, error) {
	if viewerID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("viewer and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	encodedViewer := base64.RawURLEncoding.EncodeToString([]byte(viewerID))
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	signature := s.sign(encodedViewer, ts, encodedPath)
	return strings.Join([]string{encodedViewer, ts, encodedPath, signature}, "."), expiresAt, nil
}

// Verify validates a token and returns its grant.
func (s *SignedURLSigner) Verify(token string) (*Grant, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return nil, ErrInvalidToken
	}
	encodedViewer, ts, encodedPath, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.sign(encodedViewer, ts, encodedPath)), []byte(signature)) {
		return nil, ErrInvalidToken
	}
	viewer, err := base64.RawURLEncoding.DecodeString(encodedViewer)
	if err != nil {
		return nil, ErrInvalidToken
	}
	path, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return nil, ErrInvalidToken
	}
	expUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	expiresAt := time.Unix(expUnix, 0)
	if s.now().After(expiresAt) {
		return nil, ErrTokenExpired
	}
	return &Grant{ViewerID: string(viewer), Path: string(path), ExpiresAt: expiresAt}, nil
}

func (s *SignedURLSigner) sign(viewer, ts, path string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(viewer + "|" + ts + "|" + path))
	return hex.EncodeToString(mac.Sum(nil))
}
