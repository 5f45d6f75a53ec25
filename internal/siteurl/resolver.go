// Package siteurl derives the public origin used in absolute storefront URLs.
package siteurl

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

// DefaultSiteURL is used when no usable site URL is configured.
const DefaultSiteURL = "https://www.vcocncspare.com"

// Resolver resolves the canonical base URL for a request.
type Resolver struct {
	fallback string
}

// NewResolver creates a Resolver whose static fallback is derived from the configured site URL.
func NewResolver(configured string) *Resolver {
	return &Resolver{fallback: SiteURL(configured)}
}

// Fallback returns the static site URL used when request headers are unusable.
func (r *Resolver) Fallback() string {
	return r.fallback
}

// BaseURL returns scheme://host for req, preferring forwarded headers set by the proxy.
// It never returns a trailing slash and falls back to the static site URL when req is nil
// or carries no host.
func (r *Resolver) BaseURL(req *http.Request) string {
	if req == nil {
		return r.fallback
	}

	host := firstValue(req.Header.Get("X-Forwarded-Host"))
	if host == "" {
		host = strings.TrimSpace(req.Host)
	}
	if host == "" || strings.ContainsAny(host, "/ ?#@") {
		return r.fallback
	}

	proto := strings.ToLower(firstValue(req.Header.Get("X-Forwarded-Proto")))
	if proto != "http" && proto != "https" {
		proto = "https"
	}

	return strings.TrimRight(proto+"://"+NormalizeHost(host, proto), "/")
}

// SiteURL turns a configured site URL into an absolute origin.
func SiteURL(raw string) string {
	v := strings.TrimSpace(raw)
	lower := strings.ToLower(v)
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(lower, scheme) {
			rest := strings.TrimRight(v[len(scheme):], "/")
			if rest == "" {
				return DefaultSiteURL
			}
			return scheme + rest
		}
	}

	v = strings.TrimRight(v, "/")
	if v == "" || strings.Contains(v, "://") {
		return DefaultSiteURL
	}
	hostname := v
	if h, _, err := net.SplitHostPort(v); err == nil {
		hostname = h
	}
	if IsLocalHostname(hostname) {
		return "http://" + v
	}
	return "https://" + v
}

// NormalizeHost strips ports that should never appear in public URLs: the default port
// of proto and the internal dev ports 3000, 3001 and 8080. Local hosts keep their port.
func NormalizeHost(host, proto string) string {
	h := strings.TrimSpace(host)
	if h == "" || strings.HasPrefix(h, "[") {
		return h
	}

	idx := strings.LastIndex(h, ":")
	if idx <= 0 {
		return h
	}
	hostname, portStr := h[:idx], h[idx+1:]
	if portStr == "" {
		return hostname
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return h
	}
	if IsLocalHostname(hostname) {
		return h
	}

	if (proto == "http" && port == 80) || (proto == "https" && port == 443) {
		return hostname
	}
	switch port {
	case 3000, 3001, 8080:
		return hostname
	}
	return h
}

// IsLocalHostname reports whether hostname refers to the local machine.
func IsLocalHostname(hostname string) bool {
	switch strings.ToLower(hostname) {
	case "localhost", "127.0.0.1", "0.0.0.0":
		return true
	}
	return false
}

func firstValue(header string) string {
	if i := strings.Index(header, ","); i >= 0 {
		header = header[:i]
	}
	return strings.TrimSpace(header)
}
