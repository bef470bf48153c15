package api

import (
	"net/url"
	"sort"
	"strings"
)

// sensitiveKeys are substrings of query keys whose values must not be logged.
var sensitiveKeys = []string{"token", "secret", "code", "key", "password"}

// maskURL replaces the values of sensitive query parameters with "***".
// An unparsable URL is returned with its query dropped.
func maskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexByte(rawURL, '?'); i >= 0 {
			return rawURL[:i]
		}
		return rawURL
	}
	q := u.Query()
	if len(q) == 0 {
		return rawURL
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range q[k] {
			val := url.QueryEscape(v)
			if isSensitive(k) {
				val = "***"
			}
			parts = append(parts, url.QueryEscape(k)+"="+val)
		}
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}

func isSensitive(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}
