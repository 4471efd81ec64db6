package urlutil

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// dotted quad with octets 0-255; leading zeros are allowed
var ipv4Pattern = regexp.MustCompile(`^((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)

// IsIPAddress reports whether the host of rawURL is a bare IPv4 dotted quad
// or an IPv6 literal. Parse failures report false.
func IsIPAddress(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Hostname()
	if strings.Contains(host, ":") {
		return net.ParseIP(host) != nil
	}
	return ipv4Pattern.MatchString(host)
}

type queryPair struct {
	raw   string
	name  string
	value string
}

// splitQuery splits a raw query into its "&"-separated pairs. Malformed
// escapes are kept literally and ";" is an ordinary character, so one bad
// pair never hides the others.
func splitQuery(rawQuery string) []queryPair {
	var pairs []queryPair
	for _, piece := range strings.Split(rawQuery, "&") {
		if piece == "" {
			continue
		}
		name, value, _ := strings.Cut(piece, "=")
		pairs = append(pairs, queryPair{raw: piece, name: unescape(name), value: unescape(value)})
	}
	return pairs
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}

// GetURLParams returns every query parameter of rawURL. When a name is
// repeated the last occurrence wins. Only an unparsable URL is an error.
func GetURLParams(rawURL string) (map[string]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	pairs := splitQuery(u.RawQuery)
	params := make(map[string]string, len(pairs))
	for _, p := range pairs {
		params[p.name] = p.value
	}
	return params, nil
}

// StripParams returns rawURL without the named query parameters. The order
// of the remaining parameters is preserved.
func StripParams(rawURL string, names []string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	var kept []string
	for _, p := range splitQuery(u.RawQuery) {
		if _, ok := drop[p.name]; ok {
			continue
		}
		kept = append(kept, p.raw)
	}
	u.RawQuery = strings.Join(kept, "&")
	u.ForceQuery = false
	return u.String(), nil
}

// RemoveURLParam strips names from the current location and replaces the
// history entry in place. Nothing is navigated or reloaded.
func RemoveURLParam(loc Location, names []string) error {
	cleaned, err := StripParams(loc.Href(), names)
	if err != nil {
		return err
	}
	loc.ReplaceState(cleaned)
	return nil
}

// SubBefore returns the part of s before the first sep, or s when sep is absent
func SubBefore(s, sep string) string {
	if idx := strings.Index(s, sep); idx != -1 {
		return s[:idx]
	}
	return s
}

// Origin returns scheme://host[:port] of rawURL
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host}).String(), nil
}

// Hostname returns the host of rawURL without port or brackets
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
