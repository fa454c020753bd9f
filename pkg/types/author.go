// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Author is an observed researcher whose publications pubwatch imports.
// Authors are maintained externally (seed file or direct store edits) and
// are read-only to the ingestion core.
type Author struct {
	// FirstName and LastName form the display identity of the author.
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`

	// RemoteIDs lists every remote-source author profile belonging to this
	// author. Duplicate profiles in the remote database are common, so one
	// author may carry several IDs.
	RemoteIDs []string `json:"remote_ids" yaml:"remote_ids"`

	// Categories are free-form research-area tags (e.g. "biophysics").
	Categories []string `json:"categories" yaml:"categories"`

	// AllowedAffiliations and DeniedAffiliations hold remote affiliation IDs
	// controlling automatic import eligibility. Deny wins for a single
	// author; across authors an allow overrides (see directory.CheckAffiliations).
	AllowedAffiliations []string `json:"allowed_affiliations" yaml:"allowed_affiliations"`
	DeniedAffiliations  []string `json:"denied_affiliations" yaml:"denied_affiliations"`
}

// CanonicalName returns the author's name in the remote source's short
// format, "Lastname F.". This is the format publication author terms use,
// so metrics matching goes through it.
func (a Author) CanonicalName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	return fmt.Sprintf("%s %c.", a.LastName, []rune(a.FirstName)[0])
}
