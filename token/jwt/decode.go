package jwt

import (
	"encoding/json"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-sso-client/internal/errors"
)

// Decode parses the payload of a compact JWT without verifying its
// signature. The token is trusted because it was received directly from the
// broker over an authenticated channel. Only the payload segment is read;
// the header and signature may be anything.
func Decode(rawToken string) (*Claims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, errors.Wrapf(errors.ErrTokenDecode, "empty token")
	}
	segments := strings.Split(rawToken, ".")
	if len(segments) != 3 {
		return nil, errors.Wrapf(errors.ErrTokenDecode, "token must have three segments")
	}

	payload, err := jwtlib.NewParser().DecodeSegment(segments[1])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTokenDecode, "payload: %v", err)
	}
	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, errors.Wrapf(errors.ErrTokenDecode, "payload: %v", err)
	}
	return claims, nil
}
