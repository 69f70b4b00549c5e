package courtlistener

import (
	"strconv"
	"strings"
)

// SearchHit is one row from the /search/ endpoint. Opinion hits
// (type "o") and docket hits (type "r") share this shape; fields absent
// from a given record type are zero.
type SearchHit struct {
	ID             int    `json:"id"`
	ClusterID      int    `json:"cluster_id"`
	DocketID       int    `json:"docket_id"`
	CaseName       string `json:"caseName"`
	Court          string `json:"court"`
	CourtID        string `json:"court_id"`
	DateFiled      string `json:"dateFiled"`
	DateTerminated string `json:"dateTerminated"`
	CiteCount      int    `json:"citeCount"`
	Snippet        string `json:"snippet"`
	Status         string `json:"status"`
	Judge          string `json:"judge"`
	AbsoluteURL    string `json:"absolute_url"`

	// Opinion hits nest their constituent opinion documents.
	Opinions []NestedOpinion `json:"opinions,omitempty"`
}

// NestedOpinion is the abbreviated opinion document embedded in an
// opinion search hit.
type NestedOpinion struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Snippet string `json:"snippet"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Count   int         `json:"count"`
	Next    string      `json:"next"`
	Results []SearchHit `json:"results"`
}

// Docket is the case-level record: filing metadata, parties, and links
// to clusters.
type Docket struct {
	ID             int      `json:"id"`
	CaseName       string   `json:"case_name"`
	CourtID        string   `json:"court_id"`
	DocketNumber   string   `json:"docket_number"`
	DateFiled      string   `json:"date_filed"`
	DateTerminated string   `json:"date_terminated"`
	AssignedTo     string   `json:"assigned_to_str"`
	NatureOfSuit   string   `json:"nature_of_suit"`
	Clusters       []string `json:"clusters"`
	AbsoluteURL    string   `json:"absolute_url"`
}

// Cluster groups the opinions issued for one case decision.
type Cluster struct {
	ID                 int      `json:"id"`
	CaseName           string   `json:"case_name"`
	DateFiled          string   `json:"date_filed"`
	CitationCount      int      `json:"citation_count"`
	PrecedentialStatus string   `json:"precedential_status"`
	Judges             string   `json:"judges"`
	DocketURL          string   `json:"docket"`
	SubOpinions        []string `json:"sub_opinions"`
	AbsoluteURL        string   `json:"absolute_url"`
}

// Opinion is an individual judicial writing within a cluster.
type Opinion struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Author     string `json:"author_str"`
	PlainText  string `json:"plain_text"`
	HTML       string `json:"html"`
	ClusterURL string `json:"cluster"`
}

// Text returns the best available opinion body.
func (o Opinion) Text() string {
	if strings.TrimSpace(o.PlainText) != "" {
		return o.PlainText
	}
	return o.HTML
}

// Person is a judge record from the /people/ endpoint.
type Person struct {
	ID         int    `json:"id"`
	NameFirst  string `json:"name_first"`
	NameMiddle string `json:"name_middle"`
	NameLast   string `json:"name_last"`
}

// FullName joins the name parts with single spaces.
func (p Person) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.NameFirst, p.NameMiddle, p.NameLast} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// PeoplePage is one page of judge records.
type PeoplePage struct {
	Count   int      `json:"count"`
	Results []Person `json:"results"`
}

// IDFromURL extracts the numeric identifier from a relational API URL
// such as "/api/rest/v4/clusters/112331/". Returns 0 when no id is
// present.
func IDFromURL(u string) int {
	trimmed := strings.TrimRight(u, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0
	}
	return id
}
