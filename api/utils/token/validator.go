package token

import (
	"context"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	radixhttp "github.com/equinor/radix-common/net/http"
)

const jwksCacheTTL = 5 * time.Hour

// TokenPrincipal The user a bearer token is issued to
type TokenPrincipal interface {
	IsAuthenticated() bool
	Token() string
	Id() string
	Name() string
}

// ValidatorInterface validates bearer tokens
type ValidatorInterface interface {
	// ValidateToken returns the principal of the token when the payload and signature are valid for the issuer
	ValidateToken(context.Context, string) (TokenPrincipal, error)
}

// Validator validates tokens against the signing keys of an OIDC issuer
type Validator struct {
	validator *validator.Validator
}

var _ ValidatorInterface = &Validator{}

// NewValidator Constructor. Signing keys are read from the JWKS of the issuer and cached
func NewValidator(issuerUrl url.URL, audience string) (*Validator, error) {
	provider := jwks.NewCachingProvider(&issuerUrl, jwksCacheTTL)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerUrl.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &azureClaims{}
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Validator{validator: jwtValidator}, nil
}

func (v *Validator) ValidateToken(ctx context.Context, token string) (TokenPrincipal, error) {
	validatedToken, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, radixhttp.ForbiddenError("invalid token")
	}

	claims, ok := validatedToken.(*validator.ValidatedClaims)
	if !ok {
		return nil, radixhttp.ForbiddenError("invalid token")
	}

	azClaims, ok := claims.CustomClaims.(*azureClaims)
	if !ok || azClaims == nil {
		return nil, radixhttp.ForbiddenError("invalid azure token")
	}

	return &azurePrincipal{token: token, subject: claims.RegisteredClaims.Subject, azureClaims: *azClaims}, nil
}
