package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	xe "github.com/bandq-jp/hirelog/pkg/errors"
)

var ErrInvalidToken = errors.New("invalid token")

// InvitationMetadata is the public metadata Clerk attaches to session
// tokens of invited users.
type InvitationMetadata struct {
	Role      string `json:"role"`
	CompanyId string `json:"company_id"`
}

// Claims are the session token claims this system reads.
// Subject is the Clerk user id.
type Claims struct {
	jwt.RegisteredClaims
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Metadata InvitationMetadata `json:"public_metadata"`
}

// TokenVerifier checks a raw bearer token and extracts its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

type verifier struct {
	keys   *Keyset
	issuer string
}

// NewVerifier builds a TokenVerifier checking RS256 signatures against
// the keyset. An empty issuer skips the issuer check.
func NewVerifier(keys *Keyset, issuer string) TokenVerifier {
	return &verifier{keys: keys, issuer: issuer}
}

func (v *verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (interface{}, error) {
			kid, ok := t.Header["kid"].(string)
			if !ok || kid == "" {
				return nil, xe.Wrap(errors.New("token has no kid header"))
			}
			return v.keys.Key(ctx, kid)
		},
		options...,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, xe.Wrap(ErrInvalidToken)
	}
	return claims, nil
}
