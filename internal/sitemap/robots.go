package sitemap

import "strings"

// RobotsPolicy describes the crawl rules served at /robots.txt.
type RobotsPolicy struct {
	UserAgent string
	Allow     []string
	Disallow  []string
	Sitemaps  []string
}

// DefaultRobotsPolicy opens the storefront to every crawler except the admin
// and API surfaces and advertises the given sitemap URLs.
func DefaultRobotsPolicy(sitemaps ...string) RobotsPolicy {
	return RobotsPolicy{
		UserAgent: "*",
		Allow:     []string{"/"},
		Disallow:  []string{"/admin/", "/api/"},
		Sitemaps:  sitemaps,
	}
}

// FormatRobots renders a robots.txt body.
func FormatRobots(p RobotsPolicy) []byte {
	var b strings.Builder
	ua := p.UserAgent
	if ua == "" {
		ua = "*"
	}
	b.WriteString("User-Agent: " + ua + "\n")
	for _, a := range p.Allow {
		b.WriteString("Allow: " + a + "\n")
	}
	for _, d := range p.Disallow {
		b.WriteString("Disallow: " + d + "\n")
	}
	if len(p.Sitemaps) > 0 {
		b.WriteString("\n")
		for _, s := range p.Sitemaps {
			b.WriteString("Sitemap: " + s + "\n")
		}
	}
	return []byte(b.String())
}
