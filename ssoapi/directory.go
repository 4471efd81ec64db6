package ssoapi

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/jrsteele09/go-sso-client/internal/utils"
)

// GetCompanyList returns every branch company
func (c *Client) GetCompanyList(ctx context.Context) ([]CompanyItem, error) {
	var items []CompanyItem
	if err := c.get(ctx, RouteAllCompany, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetUserGroupList returns the current user's direct group memberships
func (c *Client) GetUserGroupList(ctx context.Context) ([]UserGroupItem, error) {
	var items []UserGroupItem
	if err := c.get(ctx, RouteUserGroups, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetGroupDetail looks up a single group by id
func (c *Client) GetGroupDetail(ctx context.Context, id string) (*UserGroupItem, error) {
	var item UserGroupItem
	err := c.get(ctx, RouteGroupDetail, func(r *resty.Request) {
		r.SetPathParam("id", id)
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetUserInfo returns the OIDC userinfo of the current user
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := c.get(ctx, RouteUserInfo, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetUserDetail returns the directory profile of the current user
func (c *Client) GetUserDetail(ctx context.Context) (*UserDetail, error) {
	var detail UserDetail
	if err := c.get(ctx, RouteUserDetail, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetUserDetailByID returns the broker's representation of user id
func (c *Client) GetUserDetailByID(ctx context.Context, id string) (*OriginUserDetail, error) {
	var detail OriginUserDetail
	err := c.get(ctx, RouteUserByID, func(r *resty.Request) {
		r.SetPathParam("id", id)
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetUsers searches users by employee number or name
func (c *Client) GetUsers(ctx context.Context, params SearchUsersParams) ([]SearchUserItem, error) {
	q := map[string]string{}
	if params.Username != "" {
		q["username"] = params.Username
	}
	if params.RealName != "" {
		q["real_name"] = params.RealName
	}
	utils.SetOptional(q, "exact", params.Exact, strconv.FormatBool)
	utils.SetOptional(q, "enable", params.Enable, strconv.FormatBool)
	utils.SetOptional(q, "first", params.First, strconv.Itoa)
	utils.SetOptional(q, "max_size", params.MaxSize, strconv.Itoa)
	utils.SetOptional(q, "extend", params.Extend, strconv.FormatBool)

	var items []SearchUserItem
	err := c.get(ctx, RouteUserSearch, func(r *resty.Request) {
		r.SetQueryParams(q)
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetUsersByRole lists users holding a role, paginated
func (c *Client) GetUsersByRole(ctx context.Context, params SearchUsersByRoleParams) (*ListRes[SearchUserItem], error) {
	q := map[string]string{"role_name": params.RoleName}
	if params.Name != "" {
		q["name"] = params.Name
	}
	if params.Page > 0 {
		q["page"] = strconv.Itoa(params.Page)
	}
	if params.PageSize > 0 {
		q["page_size"] = strconv.Itoa(params.PageSize)
	}

	var res ListRes[SearchUserItem]
	err := c.get(ctx, RouteUserSearchRole, func(r *resty.Request) {
		r.SetQueryParams(q)
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCurUserGroupList returns the branches or business groups available to
// the current user: a branch user gets the branch and its sub-branches, a
// department user the business groups under it, a group user the group.
func (c *Client) GetCurUserGroupList(ctx context.Context) ([]CompanyItem, error) {
	var items []CompanyItem
	if err := c.get(ctx, RouteCurUserGroups, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetAllRoles returns every position role name
func (c *Client) GetAllRoles(ctx context.Context) ([]RoleItem, error) {
	var items []RoleItem
	if err := c.get(ctx, RouteAllRoles, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetCurUserRoles returns the roles mapped to the current user
func (c *Client) GetCurUserRoles(ctx context.Context) ([]UserRoleItem, error) {
	var items []UserRoleItem
	if err := c.get(ctx, RouteCurUserRoleMaps, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
