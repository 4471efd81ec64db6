package auth

import (
	"context"

	"github.com/jrsteele09/go-sso-client/ssoapi"
	"github.com/rs/zerolog/log"
)

// GetUserBranchGroup returns the name of the branch company the current user
// belongs to, or "" when no membership leads to one.
//
// A direct membership that is a branch wins without any lookup. Otherwise the
// memberships are tried in order, each walking up its parent chain one
// lookup at a time, and the first branch found is returned.
func (c *Controller) GetUserBranchGroup(ctx context.Context) (string, error) {
	groups, err := c.api.GetUserGroupList(ctx)
	if err != nil {
		return "", err
	}
	for _, g := range groups {
		if g.IsBranch() {
			return g.Name, nil
		}
	}

	for i := range groups {
		name, err := c.branchAncestor(ctx, &groups[i])
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
	return "", nil
}

func (c *Controller) branchAncestor(ctx context.Context, start *ssoapi.UserGroupItem) (string, error) {
	visited := map[string]struct{}{start.ID: {}}
	for g := start; g != nil; {
		if g.IsBranch() {
			return g.Name, nil
		}
		if g.ParentID == "" {
			return "", nil
		}
		if _, seen := visited[g.ParentID]; seen {
			log.Warn().Str("group", g.ID).Str("parent", g.ParentID).Msg("group parent chain loops")
			return "", nil
		}
		visited[g.ParentID] = struct{}{}

		if err := ctx.Err(); err != nil {
			return "", err
		}
		parent, err := c.api.GetGroupDetail(ctx, g.ParentID)
		if err != nil {
			return "", err
		}
		g = parent
	}
	return "", nil
}

// GetCompanyList returns every branch company
func (c *Controller) GetCompanyList(ctx context.Context) ([]ssoapi.CompanyItem, error) {
	return c.api.GetCompanyList(ctx)
}
