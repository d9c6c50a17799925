package rfc9110

import "strings"

// §  5.6.1.  Lists (#rule ABNF Extension)
// §
// §     A #rule extension to the ABNF rules of [RFC5234] is used to improve
// §     readability in the definitions of some list-based field values.
// §
// §     A construct "#" is defined, similar to "*", for defining comma-
// §     delimited lists of elements.
// §
// §  5.6.1.2.  Recipient Requirements
// §
// §     Empty elements do not contribute to the count of elements present.
// §     A recipient MUST parse and ignore a reasonable number of empty list
// §     elements: enough to handle common mistakes by senders that merge
// §     values, but not so much that they could be used as a denial-of-
// §     service mechanism.
//
// GetListHeader splits all values of a list-based field into trimmed,
// non-empty elements. Commas inside quoted strings are not special-cased,
// since none of the fields this package reads can contain them.
func GetListHeader(values []string) []string {
	list := make([]string, 0)
	for _, hdr := range values {
		for _, item := range strings.Split(hdr, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
	}
	return list
}
