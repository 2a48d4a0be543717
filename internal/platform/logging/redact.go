package logging

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

// Redacted replaces masked values in log output. It matches masq's
// default redaction message.
const Redacted = "[REDACTED]"

// credentialHeaders are HTTP headers whose values never reach the logs.
var credentialHeaders = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
}

// jwtValue wants three base64url segments of 10+ characters each so version
// strings and layer paths do not match.
var (
	bearerValue = regexp.MustCompile(`(?i)bearer\s+[a-z0-9\-._~+/]+=*`)
	jwtValue    = regexp.MustCompile(`[A-Za-z0-9\-_]{10,}\.[A-Za-z0-9\-_]{10,}\.[A-Za-z0-9\-_]{10,}`)
	inlineKey   = regexp.MustCompile(`(?i)api[_\-]?key\s*[:=]\s*\S+`)
)

// IsCredentialHeader reports whether the named HTTP header carries
// credentials. The comparison ignores case.
func IsCredentialHeader(name string) bool {
	return slices.Contains(credentialHeaders, strings.ToLower(name))
}

// redactor masks attributes by key (credential headers, tokens, secrets)
// and by value for bearer tokens, JWTs and inline API keys that slipped into
// free-form strings such as alert bridge error bodies.
func redactor() func([]string, slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
		masq.WithRegex(bearerValue),
		masq.WithRegex(jwtValue),
		masq.WithRegex(inlineKey),
	}
	for _, h := range credentialHeaders {
		opts = append(opts, masq.WithFieldName(h))
	}
	return masq.New(opts...)
}
