package rfc9110

import "strings"

// §  8.3.  Content-Type
// §
// §     The "Content-Type" header field indicates the media type of the
// §     associated representation: either the representation enclosed in the
// §     message content or the selected representation, as determined by the
// §     message semantics.
// §
// §       Content-Type = media-type
// §
// §  8.3.1.  Media Type
// §
// §       media-type = type "/" subtype parameters
// §       type       = token
// §       subtype    = token
// §
// §  5.6.6.  Parameters
// §
// §       parameters      = *( OWS ";" OWS [ parameter ] )
// §       parameter       = parameter-name "=" parameter-value
// §       parameter-name  = token
// §       parameter-value = ( token / quoted-string )
// §
// §     Parameter names are case-insensitive.  Parameter values might or
// §     might not be case-sensitive, depending on the semantics of the
// §     parameter name.
//
// MediaTypeParam returns the value of the named parameter of a media type,
// or "" if the parameter is missing.
func MediaTypeParam(mediaType, name string) string {
	params := strings.Split(mediaType, ";")
	for _, param := range params[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), name) {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		return value
	}
	return ""
}
