package auth

import "github.com/jrsteele09/go-sso-client/oauth2"

// State is a step of the SSO login state machine
type State int

const (
	StateNoSession State = iota
	StateRedirectingToLogin
	StateAwaitingCallbackValidation
	StateExchangingToken
	StateAuthenticated
	StateExchangeFailed
)

func (s State) String() string {
	switch s {
	case StateNoSession:
		return "NO_SESSION"
	case StateRedirectingToLogin:
		return "REDIRECTING_TO_LOGIN"
	case StateAwaitingCallbackValidation:
		return "AWAITING_CALLBACK_VALIDATION"
	case StateExchangingToken:
		return "EXCHANGING_TOKEN"
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateExchangeFailed:
		return "EXCHANGE_FAILED"
	}
	return "UNKNOWN"
}

// OutcomeKind says what the host has to do with an Outcome
type OutcomeKind int

const (
	// OutcomeAuthenticated carries the auth token set; nothing to navigate
	OutcomeAuthenticated OutcomeKind = iota + 1
	// OutcomeRedirect requires a full navigation to URL
	OutcomeRedirect
	// OutcomeError reports a failure the flow could not recover from
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// Outcome is the result of a step of the login flow. The controller never
// navigates itself; hosts act on the outcome.
type Outcome struct {
	Kind  OutcomeKind
	State State

	// URL is the navigation target of a redirect
	URL string

	// CleanURL is the location written in place after a successful callback
	CleanURL string

	// Tokens is the auth token set of an authenticated outcome
	Tokens *oauth2.TokenSet

	// Err is the cause of an error outcome, or the logged failure behind an
	// EXCHANGE_FAILED redirect
	Err error
}

func redirect(state State, url string) Outcome {
	return Outcome{Kind: OutcomeRedirect, State: state, URL: url}
}

// failed reports a store or location failure at state both as an error
// outcome and as the returned error
func failed(state State, err error) (Outcome, error) {
	return Outcome{Kind: OutcomeError, State: state, Err: err}, err
}

// IsRedirect reports whether the host must navigate
func (o Outcome) IsRedirect() bool {
	return o.Kind == OutcomeRedirect
}
