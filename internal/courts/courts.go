// Package courts holds the static jurisdiction knowledge every query
// needs: the New York court scope registry (trial-level "primary" courts
// versus appellate "secondary" courts), the small-claims jurisdiction fee
// table, and the legal-area keyword expansion table. Everything here is
// built once at startup and never mutated.
package courts

// ID identifies a court in the upstream case-law API.
type ID string

// Primary (trial-level, high consumer relevance) court identifiers.
var primaryCourts = []ID{
	"ny-civ-ct",
	"ny-city-ct-buffalo",
	"ny-city-ct-rochester",
	"ny-city-ct-syracuse",
	"ny-city-ct-albany",
	"ny-city-ct-yonkers",
	"ny-dist-ct-nassau",
	"ny-dist-ct-suffolk",
}

// Secondary (appellate, precedent-setting) court identifiers.
var secondaryCourts = []ID{
	"ny-supreme-ct",
	"ny-app-div-1st",
	"ny-app-div-2nd",
	"ny-app-div-3rd",
	"ny-app-div-4th",
	"ny-ct-app",
}

// Level selects a court tier for scope-sensitive tools.
type Level string

const (
	// LevelTrial selects the primary tier.
	LevelTrial Level = "trial"
	// LevelAppellate selects the secondary tier.
	LevelAppellate Level = "appellate"
	// LevelAll selects the union of both tiers.
	LevelAll Level = "all"
)

// Primary returns the trial-level court tier.
func Primary() []ID {
	return clone(primaryCourts)
}

// Secondary returns the appellate court tier.
func Secondary() []ID {
	return clone(secondaryCourts)
}

// All returns the union of both tiers. Primary courts come first; the
// tiers are disjoint by construction.
func All() []ID {
	out := make([]ID, 0, len(primaryCourts)+len(secondaryCourts))
	out = append(out, primaryCourts...)
	out = append(out, secondaryCourts...)
	return out
}

// ScopeFor maps a court level to the matching tier. Unknown levels fall
// back to the full union rather than failing the request.
func ScopeFor(level Level) []ID {
	switch level {
	case LevelTrial:
		return Primary()
	case LevelAppellate:
		return Secondary()
	default:
		return All()
	}
}

// Contains reports whether id is in the given scope.
func Contains(scope []ID, id ID) bool {
	for _, c := range scope {
		if c == id {
			return true
		}
	}
	return false
}

func clone(ids []ID) []ID {
	out := make([]ID, len(ids))
	copy(out, ids)
	return out
}
