// Package query turns tool parameters into normalized requests against
// the upstream search surface. Construction is pure: validation failures
// happen here, before any network call is attempted.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"caselaw/internal/caselawerr"
	"caselaw/internal/courts"
)

// DateRange is the enumerated, exhaustive date-window policy.
type DateRange string

const (
	// DateRangeRecent selects cases filed in the last two years.
	DateRangeRecent DateRange = "recent-2years"
	// DateRangeEstablished selects the settled-precedent window: filed
	// between ten and five years ago, deliberately excluding both very
	// old and very recent cases.
	DateRangeEstablished DateRange = "established-precedent"
	// DateRangeAllTime applies no date filter.
	DateRangeAllTime DateRange = "all-time"
)

// RecordType discriminates the upstream search surfaces.
type RecordType string

const (
	// Opinions searches opinion records.
	Opinions RecordType = "o"
	// Dockets searches docket (case-level) records.
	Dockets RecordType = "r"
)

// Limits on a search request. Fixed contract values, not configuration.
const (
	MaxKeywords      = 10
	MaxKeywordLen    = 100
	MaxQueryKeywords = 5
	MaxLimit         = 20
	MaxPageSize      = 40
)

// DefaultSearchFields is the minimized projection for a search pass:
// never request full opinion text while searching.
var DefaultSearchFields = []string{
	"id", "cluster_id", "docket_id", "caseName", "court", "court_id",
	"dateFiled", "citeCount", "snippet",
}

// DocketSearchFields extends the projection with termination data for
// outcome analysis over docket records.
var DocketSearchFields = []string{
	"docket_id", "caseName", "court", "court_id",
	"dateFiled", "dateTerminated", "citeCount", "snippet",
}

// Request carries the tool-level search parameters. It is constructed
// per call and never persisted.
type Request struct {
	Keywords  []string
	CaseType  string
	DateRange DateRange
	Limit     int

	// Courts is the scope; empty defaults to the primary tier.
	Courts []courts.ID
	// Type selects opinions or dockets; empty defaults to opinions.
	Type RecordType
	// CitedGt filters to results cited more than this many times;
	// negative disables the filter.
	CitedGt int
	// PageSize overrides the raw candidate count; 0 derives it from
	// Limit (2x, capped at MaxPageSize).
	PageSize int
	// Fields overrides the projection; nil uses the type default.
	Fields []string
	// ExactPhrase bypasses keyword assembly and searches the single
	// phrase verbatim (citation validation).
	ExactPhrase string
}

// Query is a normalized upstream search request, ready to encode.
type Query struct {
	QueryString string
	DateRange   DateRange
	FiledAfter  string
	FiledBefore string
	Type        RecordType
	Courts      []courts.ID
	CitedGt     int
	PageSize    int
	Fields      []string
	// ConsumerBoosted reports that the consumer-context clause was
	// conjoined (see Builder.Build).
	ConsumerBoosted bool
}

// Builder assembles queries. The clock is injectable so date-window
// tests are reproducible.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder using the wall clock.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// WithClock replaces the clock. For tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// caseTypeTerms supplements the query with fixed per-case-type search
// terms, recovered from the original tool behavior. Unknown case types
// contribute nothing.
var caseTypeTerms = map[string][]string{
	"consumer":        {"consumer", "warranty", "defect"},
	"small_claims":    {"damages", "compensation"},
	"landlord_tenant": {"landlord", "tenant", "lease"},
	"contract":        {"contract", "breach", "agreement"},
}

// Build validates the request and produces the normalized query.
// It fails with INVALID_INPUT, before any network call, when no valid
// keyword survives validation (trimmed, non-empty, at most MaxKeywordLen
// chars).
func (b *Builder) Build(req Request) (*Query, error) {
	q := &Query{
		DateRange: req.DateRange,
		Type:      req.Type,
		Courts:    req.Courts,
		CitedGt:   req.CitedGt,
		Fields:    req.Fields,
	}
	if q.Type == "" {
		q.Type = Opinions
	}
	if len(q.Courts) == 0 {
		q.Courts = courts.Primary()
	}
	if q.Fields == nil {
		if q.Type == Dockets {
			q.Fields = DocketSearchFields
		} else {
			q.Fields = DefaultSearchFields
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > MaxLimit {
		return nil, caselawerr.Invalid("limit", "must be between 1 and "+strconv.Itoa(MaxLimit)).
			WithContext("limit", req.Limit)
	}
	q.PageSize = req.PageSize
	if q.PageSize <= 0 {
		q.PageSize = 2 * limit
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	if req.ExactPhrase != "" {
		q.QueryString = quote(req.ExactPhrase)
	} else {
		qs, boosted, err := assembleKeywords(req.Keywords, req.CaseType)
		if err != nil {
			return nil, err
		}
		q.QueryString = qs
		q.ConsumerBoosted = boosted
	}

	b.applyDateWindow(q)
	return q, nil
}

// ValidKeywords returns the trimmed, non-empty, length-bounded keywords,
// capped at MaxKeywords. Scoring uses the same set as query assembly.
func ValidKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" || len(kw) > MaxKeywordLen {
			continue
		}
		out = append(out, kw)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

func assembleKeywords(keywords []string, caseType string) (string, bool, error) {
	valid := ValidKeywords(keywords)
	if len(valid) == 0 {
		return "", false, caselawerr.New(caselawerr.InvalidInput,
			"no valid keywords: each keyword must be non-empty and at most 100 characters").
			WithSuggestion("Extract 1-10 short legal terms from the problem description.").
			WithContext("keywords", keywords)
	}

	used := valid
	if len(used) > MaxQueryKeywords {
		used = used[:MaxQueryKeywords]
	}

	terms := make([]string, 0, len(used)+3)
	for _, kw := range used {
		terms = append(terms, quote(kw))
	}
	// Fixed per-case-type recall terms join the same OR group so they
	// widen rather than constrain.
	for _, t := range caseTypeTerms[strings.ToLower(caseType)] {
		terms = append(terms, quote(t))
	}

	group := "(" + strings.Join(terms, " OR ") + ")"

	// Heuristic recall booster, not a correctness guarantee: unless a
	// supplied keyword already signals consumer context, bias the search
	// toward the consumer-protection domain.
	boosted := !anyMentionsConsumer(valid)
	if boosted {
		group += ` AND (consumer OR "consumer protection")`
	}
	return group, boosted, nil
}

func anyMentionsConsumer(keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(strings.ToLower(kw), "consumer") {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, ``) + `"`
}

func (b *Builder) applyDateWindow(q *Query) {
	today := b.now().UTC()
	switch q.DateRange {
	case DateRangeRecent:
		q.FiledAfter = today.AddDate(-2, 0, 0).Format("2006-01-02")
	case DateRangeEstablished:
		q.FiledAfter = today.AddDate(-10, 0, 0).Format("2006-01-02")
		q.FiledBefore = today.AddDate(-5, 0, 0).Format("2006-01-02")
	case DateRangeAllTime:
		// no filter
	default:
		// Unrecognized ranges must not fail the request: no filter.
		q.DateRange = DateRangeAllTime
	}
}

// YearsBack returns the ISO date n calendar years before the clock's
// current day. Used by the period-scoped analysis tools.
func (b *Builder) YearsBack(n int) string {
	return b.now().UTC().AddDate(-n, 0, 0).Format("2006-01-02")
}

// Values encodes the query as upstream request parameters.
func (q *Query) Values() url.Values {
	v := url.Values{}
	v.Set("q", q.QueryString)
	v.Set("type", string(q.Type))
	v.Set("order_by", "score desc")
	v.Set("page_size", strconv.Itoa(q.PageSize))

	ids := make([]string, len(q.Courts))
	for i, c := range q.Courts {
		ids[i] = string(c)
	}
	v.Set("court", strings.Join(ids, " "))

	if q.FiledAfter != "" {
		v.Set("filed_after", q.FiledAfter)
	}
	if q.FiledBefore != "" {
		v.Set("filed_before", q.FiledBefore)
	}
	if q.CitedGt >= 0 {
		v.Set("cited_gt", strconv.Itoa(q.CitedGt))
	}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	return v
}
