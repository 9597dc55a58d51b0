// Package identity assigns stable UUIDs to icons so that catalogs generated
// from different releases can be joined on the icon, not on its file name.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceIcon is the UUID v5 namespace for icon identities, derived from
// "pumlicons/icon-identity/v1" in the URL namespace.
var NamespaceIcon = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pumlicons/icon-identity/v1"))

// IconID returns the deterministic UUID v5 of an icon.
//
// The key is "category/identifier", lower-cased, so a change of case in the
// vendor file name does not produce a new identity:
//
//	IconID("Storage", "SimpleStorageService") == IconID("storage", "simplestorageservice")
func IconID(category, identifier string) uuid.UUID {
	return uuid.NewSHA1(NamespaceIcon, []byte(key(category, identifier)))
}

func key(category, identifier string) string {
	return strings.ToLower(strings.TrimSpace(category)) + "/" + strings.ToLower(strings.TrimSpace(identifier))
}
