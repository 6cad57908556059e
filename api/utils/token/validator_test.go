package token

import (
	"context"
	"net/url"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oauth2-proxy/mockoidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAudience = "console-audience"

func Test_ValidToken(t *testing.T) {
	issuer := createIssuer(t)
	v, err := NewValidator(issuer, testAudience)
	require.NoError(t, err)

	signed := createToken(t, issuer, testAudience, "user1")
	principal, err := v.ValidateToken(context.Background(), signed)
	require.NoError(t, err)
	assert.True(t, principal.IsAuthenticated())
	assert.Equal(t, "sub:user1", principal.Id())
	assert.Equal(t, "user1", principal.Name())
	assert.Equal(t, signed, principal.Token())
}

func Test_InvalidAudience(t *testing.T) {
	issuer := createIssuer(t)
	v, err := NewValidator(issuer, testAudience)
	require.NoError(t, err)

	_, err = v.ValidateToken(context.Background(), createToken(t, issuer, "other-audience", "user1"))
	assert.Error(t, err)
}

func Test_NotAToken(t *testing.T) {
	issuer := createIssuer(t)
	v, err := NewValidator(issuer, testAudience)
	require.NoError(t, err)

	_, err = v.ValidateToken(context.Background(), "xyz")
	assert.Error(t, err)
}

func Test_ChainedValidator(t *testing.T) {
	issuer1 := createIssuer(t)
	issuer2 := createIssuer(t)
	v1, err := NewValidator(issuer1, testAudience)
	require.NoError(t, err)
	v2, err := NewValidator(issuer2, testAudience)
	require.NoError(t, err)
	v := NewChainedValidator(v1, v2)

	principal, err := v.ValidateToken(context.Background(), createToken(t, issuer2, testAudience, "user1"))
	require.NoError(t, err)
	assert.Equal(t, "user1", principal.Name())

	unknownIssuer, err := url.Parse("http://unknown-issuer/")
	require.NoError(t, err)
	_, err = v.ValidateToken(context.Background(), createToken(t, *unknownIssuer, testAudience, "user1"))
	assert.Error(t, err)

	_, err = NewChainedValidator().ValidateToken(context.Background(), "xyz")
	assert.ErrorIs(t, err, errNoIssuersFound)
}

func createIssuer(t *testing.T) url.URL {
	m, err := mockoidc.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.Shutdown()
	})

	issuer, err := url.Parse(m.Issuer())
	require.NoError(t, err)
	return *issuer
}

func createToken(t *testing.T, issuer url.URL, audience, subject string) string {
	user := mockoidc.DefaultUser()
	key, err := mockoidc.DefaultKeypair()
	require.NoError(t, err)

	claims, err := user.Claims([]string{"profile", "email"}, &mockoidc.IDTokenClaims{
		RegisteredClaims: &jwt.RegisteredClaims{
			Issuer:   issuer.String(),
			Subject:  subject,
			Audience: []string{audience},
		},
	})
	require.NoError(t, err)

	signed, err := key.SignJWT(claims)
	require.NoError(t, err)
	return signed
}
