package rfc9110

import "net/http"

// §  13.1.2.  If-None-Match
// §
// §     The "If-None-Match" header field makes the request method conditional
// §     on a recipient cache or origin server either not having any current
// §     representation of the target resource, when the field value is "*",
// §     or having a selected representation with an entity tag that does not
// §     match any of those listed in the field value.
// §
// §     A recipient cache or origin server can use If-None-Match with
// §     GET and HEAD to validate its stored responses; the client supplies
// §     the entity tags of the representations it holds.
// §
// §       If-None-Match = "*" / #entity-tag
//
// ParseIfNoneMatch returns the entity tags listed in the request's
// If-None-Match field. It returns nil when the field is absent or empty.
// The tags are returned as sent, quotes and weak prefix included.
func ParseIfNoneMatch(h http.Header) []string {
	tags := GetListHeader(h.Values("If-None-Match"))
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// Matches reports whether etag is one of tags.
// The comparison is an exact string match: "*" is not treated as a wildcard
// and a weak tag only matches the identical weak tag.
func Matches(tags []string, etag string) bool {
	for _, tag := range tags {
		if tag == etag {
			return true
		}
	}
	return false
}
