package ssoapi

import (
	"encoding/json"
	"slices"
)

// Group category codes found in UserGroupItem.Attributes.Type
const (
	GroupTypeBranch = "3" // Branch company, terminal for hierarchy resolution
	GroupTypeTeam   = "4" // Business group
)

// TokenRequest holds the parameters of the authorization code exchange
type TokenRequest struct {
	Code        string
	ClientID    string
	State       string
	RedirectURI string
}

// UserGroupItem is an organisational group. Groups form a tree through
// ParentID; parents are looked up on demand.
type UserGroupItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	ParentID      string `json:"parentId,omitempty"`
	SubGroupCount int    `json:"subGroupCount"`
	Attributes    struct {
		Type []string `json:"type"`
	} `json:"attributes"`
	SubGroups json.RawMessage `json:"subGroups,omitempty"`
	Kind      string          `json:"type,omitempty"`
	Sfejfgs   json.RawMessage `json:"sfejfgs,omitempty"`
}

// HasType reports whether the group carries category code t
func (g *UserGroupItem) HasType(t string) bool {
	return slices.Contains(g.Attributes.Type, t)
}

// IsBranch reports whether the group is a branch company node
func (g *UserGroupItem) IsBranch() bool {
	return g.HasType(GroupTypeBranch)
}

// CompanyItem is a branch company or business group available to a user
type CompanyItem struct {
	DepartmentCD   string `json:"department_cd"`
	DepartmentName string `json:"department_name"`
	Sfejfgs        string `json:"sfejfgs"`
	ParentCD       string `json:"parent_cd"`
	Type           string `json:"type"`
}

// UserInfo is the OIDC userinfo of the current user
type UserInfo struct {
	Sub               string `json:"sub"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	GivenName         string `json:"given_name,omitempty"`
	FamilyName        string `json:"family_name,omitempty"`
	Email             string `json:"email,omitempty"`
	EmailVerified     bool   `json:"email_verified"`
}

// UserDetail is the directory profile of the current user
type UserDetail struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	RealName   string              `json:"real_name"`
	Email      string              `json:"email,omitempty"`
	Enabled    bool                `json:"enabled"`
	Position   string              `json:"position,omitempty"`
	Department string              `json:"department,omitempty"`
	Groups     []UserGroupItem     `json:"groups,omitempty"`
	Attributes map[string][]string `json:"attributes,omitempty"`
}

// OriginUserDetail is the broker's own representation of a user
type OriginUserDetail struct {
	ID               string              `json:"id"`
	Username         string              `json:"username"`
	FirstName        string              `json:"firstName,omitempty"`
	LastName         string              `json:"lastName,omitempty"`
	Email            string              `json:"email,omitempty"`
	EmailVerified    bool                `json:"emailVerified"`
	Enabled          bool                `json:"enabled"`
	CreatedTimestamp int64               `json:"createdTimestamp"`
	Attributes       map[string][]string `json:"attributes,omitempty"`
}

// SearchUserItem is one result of a user search
type SearchUserItem struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	RealName   string `json:"real_name"`
	Email      string `json:"email,omitempty"`
	Enabled    bool   `json:"enabled"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

// RoleItem is a position role name
type RoleItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserRoleItem is a role mapped to the current user
type UserRoleItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Composite   bool   `json:"composite"`
	ClientRole  bool   `json:"clientRole"`
	ContainerID string `json:"containerId,omitempty"`
}

// ListRes is a paginated result
type ListRes[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	List     []T `json:"list"`
}

// SearchUsersParams filters GetUsers.
type SearchUsersParams struct {
	Username string // Employee number, at least four characters
	RealName string // Name, at least two characters
	Exact    *bool  // Only exact matches
	Enable   *bool  // Only enabled users
	First    *int   // Pagination offset, from 0
	MaxSize  *int   // Maximum result size (server default 100)
	Extend   *bool  // Include position and department
}

// SearchUsersByRoleParams filters GetUsersByRole.
type SearchUsersByRoleParams struct {
	RoleName string // Required, exact role name
	Name     string // Optional fuzzy user name
	Page     int    // From 1, server default 1
	PageSize int    // Server default 10
}
