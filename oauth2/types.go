package oauth2

// GrantType is the grant_type sent to the broker's token endpoint.
type GrantType string

const (
	// UMATicketGrant exchanges a permission ticket for an authorization-scoped
	// token (User-Managed Access).
	UMATicketGrant GrantType = "urn:ietf:params:oauth:grant-type:uma-ticket"

	// RefreshTokenGrant exchanges a refresh token for a new token set.
	RefreshTokenGrant GrantType = "refresh_token"
)

// Query parameter names carried by an SSO callback redirect.
const (
	ParamState        = "state"
	ParamCode         = "code"
	ParamIssuer       = "iss"
	ParamSessionState = "session_state"
)

// CallbackParams is the exact parameter set identifying an SSO callback.
var CallbackParams = []string{ParamState, ParamCode, ParamIssuer, ParamSessionState}

// Query parameter names of the login and logout navigation URLs.
const (
	ParamRedirectURI           = "redirect_uri"
	ParamClientID              = "client_id"
	ParamScope                 = "scope"
	ParamKeycloakHost          = "keycloak_host"
	ParamIDTokenHint           = "id_token_hint"
	ParamPostLogoutRedirectURI = "post_logout_redirect_uri"
)

// PermissionTicket is the intermediate artifact exchanged for the auth token.
type PermissionTicket struct {
	Ticket string `json:"ticket"`
}
