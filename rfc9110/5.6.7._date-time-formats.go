package rfc9110

import "time"

// §  5.6.7.  Date/Time Formats
// §
// §     Examples of the two obsolete formats are
// §
// §       Sunday, 06-Nov-94 08:49:37 GMT   ; obsolete RFC 850 format
// §       Sun Nov  6 08:49:37 1994         ; ANSI C's asctime() format
//
// Set-Cookie expiry dates use the Netscape cookie format, which is a
// four-digit-year variant of rfc850-date. RFC 6265 (section 5.1.1) parsers
// accept it.
const cookieDateLayout = "Mon, 02-Jan-2006 15:04:05 GMT"

// CookieDate formats t for the expires attribute of Set-Cookie.
func CookieDate(t time.Time) string {
	return t.UTC().Format(cookieDateLayout)
}
