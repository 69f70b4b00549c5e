package courts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed jurisdictions.toml
var jurisdictionsTOML []byte

//go:embed areas.toml
var areasTOML []byte

// Jurisdiction describes the procedural envelope of one court: its
// monetary ceiling for claims, the expected filing fee, and any notes a
// filer should see. Amounts are whole dollars.
type Jurisdiction struct {
	CourtID       string `toml:"court_id" json:"courtId"`
	CourtName     string `toml:"court_name" json:"courtName"`
	MaxClaim      int    `toml:"max_claim" json:"maxClaimAmount"`
	FilingFee     int    `toml:"filing_fee" json:"filingFeeEstimate"`
	FilingNotes   string `toml:"filing_notes" json:"filingNotes,omitempty"`
	ServiceMethod string `toml:"service_method" json:"serviceMethod,omitempty"`
}

// DefaultJurisdictionID is the general civil-court entry used for
// unknown court ids.
const DefaultJurisdictionID = "ny-civ-ct"

type jurisdictionFile struct {
	Jurisdictions []Jurisdiction `toml:"jurisdiction"`
}

type areaFile struct {
	Areas map[string][]string `toml:"areas"`
}

var (
	jurisdictionTable map[string]Jurisdiction
	areaKeywordTable  map[string][]string
)

func init() {
	var jf jurisdictionFile
	if err := toml.Unmarshal(jurisdictionsTOML, &jf); err != nil {
		panic(fmt.Sprintf("courts: bad embedded jurisdictions table: %v", err))
	}
	jurisdictionTable = make(map[string]Jurisdiction, len(jf.Jurisdictions))
	for _, j := range jf.Jurisdictions {
		jurisdictionTable[j.CourtID] = j
	}
	if _, ok := jurisdictionTable[DefaultJurisdictionID]; !ok {
		panic("courts: embedded jurisdictions table is missing the default entry")
	}

	var af areaFile
	if err := toml.Unmarshal(areasTOML, &af); err != nil {
		panic(fmt.Sprintf("courts: bad embedded areas table: %v", err))
	}
	areaKeywordTable = af.Areas

	// The tiers encode mutually exclusive domain knowledge; a court id in
	// both would silently double-weight it in every union query.
	for _, p := range primaryCourts {
		if Contains(secondaryCourts, p) {
			panic(fmt.Sprintf("courts: %q appears in both tiers", p))
		}
	}
}

// JurisdictionFor returns the fee-table entry for a court id, falling
// back to the general civil-court entry for unknown ids. The second
// return reports whether the id was known.
func JurisdictionFor(courtID string) (Jurisdiction, bool) {
	if j, ok := jurisdictionTable[courtID]; ok {
		return j, true
	}
	return jurisdictionTable[DefaultJurisdictionID], false
}

// AreaKeywords expands a legal area into its fixed search keyword set.
// The expansion is static domain knowledge, deliberately not LLM-driven.
// Unknown areas fall back to the area name itself.
func AreaKeywords(area string) []string {
	key := strings.ToLower(strings.TrimSpace(area))
	if kws, ok := areaKeywordTable[key]; ok {
		out := make([]string, len(kws))
		copy(out, kws)
		return out
	}
	if key == "" {
		return nil
	}
	return []string{key}
}

// KnownAreas lists the legal areas with a fixed expansion, for schema
// documentation.
func KnownAreas() []string {
	out := make([]string, 0, len(areaKeywordTable))
	for k := range areaKeywordTable {
		out = append(out, k)
	}
	return out
}
