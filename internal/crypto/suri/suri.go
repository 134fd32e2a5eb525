// Package suri normalises secret key URIs before they are handed to the
// derivation backend.
//
// A secret URI has the shape
//
//	<phrase | 0x-seed>[//hard | /soft]*[///password]
//
// and a URI that starts directly with a junction is rooted at DevPhrase.
package suri

import (
	"strings"
)

// DevPhrase is the well-known development mnemonic used when a URI has no phrase
const DevPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

const passwordSeparator = "///"

// Compose returns the URI the backend should derive from. A non-empty
// password replaces any password embedded in the URI.
func Compose(uri, password string) string {
	uri = strings.TrimSpace(uri)
	if strings.HasPrefix(uri, "/") {
		uri = DevPhrase + uri
	}

	if password == "" {
		return uri
	}
	if i := strings.Index(uri, passwordSeparator); i >= 0 {
		uri = uri[:i]
	}
	return uri + passwordSeparator + password
}

// HasJunctions reports whether the URI carries a derivation path or password
func HasJunctions(uri string) bool {
	return strings.Contains(uri, "/")
}
