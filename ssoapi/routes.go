package ssoapi

// Route path constants of the SSO gateway, relative to the base URL
const (
	// Token exchange
	RouteToken            = "/lxwork/api/auth/token"
	RoutePermissionTicket = "/lxwork/api/auth/create-permission-ticket"
	RouteAuthToken        = "/sso/realms/{realm}/protocol/openid-connect/token"
	RouteRefreshToken     = "/lxwork/api/auth/refresh"

	// Browser navigation targets
	RouteLogin      = "/lxwork/api/auth/login"
	RouteEndSession = "/lxwork/api/auth/endsession"

	// Directory: groups and companies
	RouteUserGroups  = "/lxwork/api/auth/users/groups"
	RouteGroupDetail = "/lxwork/api/auth/groups/{id}"
	RouteAllCompany  = "/lxwork/api/auth/groups/branch"

	// Directory: users
	RouteUserInfo        = "/lxwork/api/auth/userinfo"
	RouteUserDetail      = "/lxwork/api/auth/users/detail"
	RouteUserByID        = "/lxwork/api/auth/users/{id}"
	RouteUserSearch      = "/lxwork/api/auth/users/search"
	RouteUserSearchRole  = "/lxwork/api/auth/users/search-by-role"
	RouteCurUserGroups   = "/lxwork/api/auth/users/group/list"
	RouteAllRoles        = "/lxwork/api/auth/users/all-roles"
	RouteCurUserRoleMaps = "/lxwork/api/auth/users/role-mappings"
)
