// Package credentials resolves the backend API key through an ordered
// provider chain: explicit per-call argument, transport-forwarded header,
// then process environment. First non-empty wins.
package credentials

import (
	"context"
	"net/http"
	"os"
	"strings"
)

// EnvAPIKey is the environment fallback consulted when neither the call
// arguments nor the transport supplied a key.
const EnvAPIKey = "NOWCAPITAL_API_KEY"

// Provider yields an API key, or "" when it has none to offer.
type Provider interface {
	Resolve(ctx context.Context) string
}

// Chain tries providers in order and returns the first non-empty key.
type Chain []Provider

func (c Chain) Resolve(ctx context.Context) string {
	for _, p := range c {
		if p == nil {
			continue
		}
		if key := strings.TrimSpace(p.Resolve(ctx)); key != "" {
			return key
		}
	}
	return ""
}

// Static is an explicit per-call key.
type Static string

func (s Static) Resolve(context.Context) string { return string(s) }

// Env reads a named environment variable.
type Env string

func (e Env) Resolve(context.Context) string { return os.Getenv(string(e)) }

// Forwarded reads the key the transport lifted off the incoming HTTP
// request, if any. Stdio transports never populate it.
type Forwarded struct{}

func (Forwarded) Resolve(ctx context.Context) string {
	fwd, _ := ctx.Value(forwardedKey{}).(forwarded)
	if fwd.bearer != "" {
		return fwd.bearer
	}
	return fwd.apiKey
}

// Resolve runs the standard chain for one tool call.
func Resolve(ctx context.Context, explicit string) string {
	return Chain{Static(explicit), Forwarded{}, Env(EnvAPIKey)}.Resolve(ctx)
}

type forwardedKey struct{}

type forwarded struct {
	bearer string
	apiKey string
}

// WithForwarded captures the credential headers of an incoming request into
// the context. Registered as the HTTP/SSE context func on the transports; a
// bearer token outranks X-API-Key.
func WithForwarded(ctx context.Context, r *http.Request) context.Context {
	if r == nil {
		return ctx
	}

	var fwd forwarded
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); auth != "" {
		const prefix = "Bearer "
		if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
			fwd.bearer = strings.TrimSpace(auth[len(prefix):])
		}
	}
	fwd.apiKey = strings.TrimSpace(r.Header.Get("X-API-Key"))

	if fwd.bearer == "" && fwd.apiKey == "" {
		return ctx
	}
	return context.WithValue(ctx, forwardedKey{}, fwd)
}
