package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	radixhttp "github.com/equinor/radix-common/net/http"
	"github.com/equinor/radix-console-api/api/middleware/auth"
	"github.com/equinor/radix-console-api/api/utils/token"
	"github.com/equinor/radix-console-api/api/utils/token/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/negroni/v3"
)

func newHandler(validator token.ValidatorInterface, captured *string) http.Handler {
	n := negroni.New(
		auth.NewAuthenticationMiddleware(validator),
		auth.NewZerologAuthenticationDetailsMiddleware(),
		auth.NewAuthorizeRequiredMiddleware(),
	)
	n.UseHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = auth.CtxToken(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return n
}

func newPrincipal(ctrl *gomock.Controller, bearerToken string) token.TokenPrincipal {
	principal := mock.NewMockTokenPrincipal(ctrl)
	principal.EXPECT().IsAuthenticated().Return(true).AnyTimes()
	principal.EXPECT().Token().Return(bearerToken).AnyTimes()
	principal.EXPECT().Id().Return("oid-1").AnyTimes()
	principal.EXPECT().Name().Return("jane@example.com").AnyTimes()
	return principal
}

func Test_AuthorizedRequest_TokenInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := mock.NewMockValidatorInterface(ctrl)
	validator.EXPECT().ValidateToken(gomock.Any(), "abc123").Return(newPrincipal(ctrl, "abc123"), nil)

	var captured string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cluster/overview", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	rr := httptest.NewRecorder()

	newHandler(validator, &captured).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc123", captured)
}

func Test_InvalidToken_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := mock.NewMockValidatorInterface(ctrl)
	validator.EXPECT().ValidateToken(gomock.Any(), "expired").Return(nil, radixhttp.ForbiddenError("invalid token"))

	var captured string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cluster/overview", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rr := httptest.NewRecorder()

	newHandler(validator, &captured).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, captured)
}

func Test_AnonymousRequest_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := mock.NewMockValidatorInterface(ctrl)

	var captured string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cluster/overview", nil)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()

	newHandler(validator, &captured).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, captured)
}

func Test_InvalidAuthorizationHeader_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := mock.NewMockValidatorInterface(ctrl)

	var captured string
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cluster/overview", nil)
	req.Header.Set("Authorization", "abc123")
	rr := httptest.NewRecorder()

	newHandler(validator, &captured).ServeHTTP(rr, req)

	assert.NotEqual(t, http.StatusOK, rr.Code)
	assert.Empty(t, captured)
}

func Test_Impersonation_InContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := mock.NewMockValidatorInterface(ctrl)
	validator.EXPECT().ValidateToken(gomock.Any(), "abc123").Return(newPrincipal(ctrl, "abc123"), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	req.Header.Set("Impersonate-User", "jane")
	req.Header.Set("Impersonate-Group", "admins")
	rr := httptest.NewRecorder()

	var impersonatedUser string
	n := negroni.New(auth.NewAuthenticationMiddleware(validator))
	n.UseHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		impersonatedUser = auth.CtxImpersonation(r.Context()).User
	}))
	n.ServeHTTP(rr, req)

	assert.Equal(t, "jane", impersonatedUser)
}
