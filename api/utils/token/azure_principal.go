package token

import (
	"context"
)

type azureClaims struct {
	ObjectId       string `json:"oid,omitempty"`
	Upn            string `json:"upn,omitempty"`
	AppDisplayName string `json:"app_displayname,omitempty"`
	AppId          string `json:"appid,omitempty"`
}

func (c *azureClaims) Validate(_ context.Context) error {
	return nil
}

type azurePrincipal struct {
	token       string
	subject     string
	azureClaims azureClaims
}

func (p *azurePrincipal) Token() string {
	return p.token
}

func (p *azurePrincipal) IsAuthenticated() bool {
	return true
}

// Id the object id, or the subject for tokens of other issuers
func (p *azurePrincipal) Id() string {
	if p.azureClaims.ObjectId != "" {
		return p.azureClaims.ObjectId
	}
	return "sub:" + p.subject
}

func (p *azurePrincipal) Name() string {
	switch {
	case p.azureClaims.Upn != "":
		return p.azureClaims.Upn
	case p.azureClaims.AppDisplayName != "":
		return p.azureClaims.AppDisplayName
	case p.azureClaims.AppId != "":
		return p.azureClaims.AppId
	case p.azureClaims.ObjectId != "":
		return p.azureClaims.ObjectId
	}
	return p.subject
}
