package auth

import (
	"net/url"
	"strings"

	"github.com/gravitational/trace"
)

// NormalizeHost reduces an instance URL to the scheme+host form used as the
// credential store key. Paths, query strings and default ports are dropped
// so that "https://app.phraselab.com/" and "https://app.phraselab.com:443"
// share a single store entry. A bare host is assumed to be https.
func NormalizeHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", trace.BadParameter("instance URL is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", trace.Wrap(err, "parsing instance URL %q", raw)
	}
	if u.Host == "" {
		return "", trace.BadParameter("instance URL %q has no host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	}

	return scheme + "://" + host, nil
}
