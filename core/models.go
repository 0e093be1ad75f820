package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Company IDs come from the source data; policy IDs are either carried
// over from the source document reference or derived from content.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Policies that arrive without an explicit identifier get the same
// ID on every load as long as their content is unchanged.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Company represents an organization to match policies against.
// Records are immutable once loaded; the engine only reads them.
type Company struct {
	Id                    ID
	Name                  string
	OperatingJurisdiction string // normalized 2-letter region code
	Sector                string
	LastLogin             time.Time
}

// Policy represents a regulatory or climate policy document.
// Records are immutable once loaded; the engine only reads them.
type Policy struct {
	Id            ID
	Name          string
	Geography     string // normalized 2-letter region code, may be empty
	Sector        string
	PublishedDate time.Time // date granularity
	UpdatedDate   time.Time
	Active        bool
	Description   string // HTML-stripped plain text
	Topics        []string
	SourceURL     string
}

// RelevanceRow is one row of the deterministic relevance result.
// Geography always equals both the company's operating jurisdiction and the
// policy's geography. AvgDaysSinceUpdate is nil when the geography has no
// active policy inside the staleness window.
type RelevanceRow struct {
	CompanyId          ID
	PolicyId           ID
	Geography          string
	UpdatedDate        time.Time
	AvgDaysSinceUpdate *float64
}

// Candidate is a policy retrieved from the vector index for a company,
// prior to judge reranking. Distance is squared L2; smaller is closer.
type Candidate struct {
	PolicyId    ID
	Description string
	Distance    float32
}

// RankedPolicy is a judge-scored policy. Rank is 1-based in descending
// score order.
type RankedPolicy struct {
	PolicyId ID
	Rank     int
	Score    int
}

// CompanyRanking is the semantic ranking result for one company.
// Ranked is empty when the judge response could not be recovered.
type CompanyRanking struct {
	CompanyId ID
	Ranked    []RankedPolicy
}
