// Package cookie reads and writes browser-style cookie strings ("a=1; b=2").
package cookie

import (
	"net/url"
	"sort"
	"strings"
)

// Names of the cookies the game client relies on.
const (
	AccessToken      = "access_token"
	SessionID        = "sessionID"
	UnfinishedGameID = "unfinishedGameID"
)

const separator = ";"

// Get returns the value of the named cookie from a cookie string, or "" when absent.
// The whole string is percent-decoded before it is split.
func Get(header, name string) string {
	decoded, err := url.PathUnescape(header)
	if err != nil {
		decoded = header
	}

	prefix := name + "="
	for _, segment := range strings.Split(decoded, separator) {
		segment = strings.TrimLeft(segment, " ")
		if strings.HasPrefix(segment, prefix) {
			return segment[len(prefix):]
		}
	}

	return ""
}

// Join renders values as a cookie string with percent-encoded values, ordered by name.
// Get decodes the whole string before splitting, so a value holding ';' does not come
// back intact.
func Join(values map[string]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+url.PathEscape(values[name]))
	}

	return strings.Join(parts, separator+" ")
}
