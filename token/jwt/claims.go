package jwt

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Permission is one UMA permission granted by the broker.
type Permission struct {
	RsID   string   `json:"rsid"`
	RsName string   `json:"rsname"`
	Scopes []string `json:"scopes,omitempty"`
}

// RoleSet is a list of role names as found under realm_access and
// resource_access.
type RoleSet struct {
	Roles []string `json:"roles"`
}

// Claims is the decoded payload of an access token. It is a projection
// recomputed on every read and must not be cached.
type Claims struct {
	jwtlib.RegisteredClaims

	Name              string `json:"name,omitempty"`              // Display name
	PreferredUsername string `json:"preferred_username,omitempty"` // Employee number
	Email             string `json:"email,omitempty"`
	EmailVerified     bool   `json:"email_verified,omitempty"`

	ACR            string   `json:"acr,omitempty"`
	AllowedOrigins []string `json:"allowed-origins,omitempty"`
	AuthorizedBy   string   `json:"azp,omitempty"`
	AuthTime       int64    `json:"auth_time,omitempty"`
	Scope          string   `json:"scope,omitempty"`
	SessionState   string   `json:"session_state,omitempty"`
	SID            string   `json:"sid,omitempty"`
	Type           string   `json:"typ,omitempty"`

	Authorization struct {
		Permissions []Permission `json:"permissions,omitempty"`
	} `json:"authorization"`
	RealmAccess    RoleSet            `json:"realm_access"`
	ResourceAccess map[string]RoleSet `json:"resource_access,omitempty"`
}

// ExpiresAtUnix returns the exp claim in epoch seconds, 0 when absent
func (c *Claims) ExpiresAtUnix() int64 {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Unix()
}

// Roles returns the realm roles followed by the "account" client roles
func (c *Claims) Roles() []string {
	roles := append([]string(nil), c.RealmAccess.Roles...)
	if account, ok := c.ResourceAccess["account"]; ok {
		roles = append(roles, account.Roles...)
	}
	return roles
}

// HasPermission reports whether a permission for the named resource was granted
func (c *Claims) HasPermission(rsname string) bool {
	for _, p := range c.Authorization.Permissions {
		if p.RsName == rsname {
			return true
		}
	}
	return false
}
