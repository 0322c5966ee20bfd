package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskflow/task-service/internal/core/domain"
)

const (
	// DefaultTokenTTL is used when TokenConfig.TTL is zero.
	DefaultTokenTTL = 24 * time.Hour
	// MinSecretLength is the shortest HMAC secret accepted, in bytes.
	MinSecretLength = 32
)

var errUnexpectedMethod = errors.New("unexpected signing method")

// TokenConfig is the immutable configuration of a TokenCodec.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	// Method is one of HS256, HS384, HS512. Defaults to HS256.
	Method string
	// Issuer is written to and required on every token when non-empty.
	Issuer string
}

// TokenCodec issues and verifies HMAC-signed JWT session tokens. Its key
// material is copied at construction and never mutated afterwards.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	method *jwt.SigningMethodHMAC
	issuer string
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("token codec: secret must be at least %d bytes", MinSecretLength)
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	if ttl < 0 {
		return nil, errors.New("token codec: ttl must be positive")
	}

	var method *jwt.SigningMethodHMAC
	switch strings.ToUpper(cfg.Method) {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("token codec: unsupported signing method %q", cfg.Method)
	}

	return &TokenCodec{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		method: method,
		issuer: cfg.Issuer,
	}, nil
}

// TTL returns the lifetime of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject carrying roles, valid from now until now+TTL.
func (c *TokenCodec) Issue(subject string, roles []domain.Role, now time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("issue token: empty subject")
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}

	claims := tokenClaims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature of token and that now is before its expiry.
// The error is always one of domain.ErrTokenMalformed, ErrTokenExpired,
// ErrTokenSignatureInvalid or ErrTokenUnsupported.
func (c *TokenCodec) Verify(token string, now time.Time) (domain.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Claims{}, domain.ErrTokenMalformed
	}

	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, c.keyFunc, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) && signatureOnlyMalformed(token) {
			return domain.Claims{}, domain.ErrTokenSignatureInvalid
		}
		return domain.Claims{}, classify(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return domain.Claims{}, domain.ErrTokenMalformed
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, name := range claims.Roles {
		r := domain.Role(name)
		if !r.Valid() {
			return domain.Claims{}, domain.ErrTokenMalformed
		}
		roles = append(roles, r)
	}

	out := domain.Claims{
		ID:      claims.ID,
		Subject: claims.Subject,
		Roles:   roles,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (c *TokenCodec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != c.method.Alg() {
		return nil, fmt.Errorf("%w: %s", errUnexpectedMethod, t.Method.Alg())
	}
	return c.secret, nil
}

// signatureOnlyMalformed reports whether token has a well-formed header and
// payload, so a decode failure can only have come from the signature segment.
func signatureOnlyMalformed(token string) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}
	_, _, err := jwt.NewParser().ParseUnverified(token, &tokenClaims{})
	return err == nil
}

// classify maps golang-jwt errors onto the domain token errors. Signature
// checks run before claim validation, so a forged expired token reports the
// signature failure.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrTokenUnsupported
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}
