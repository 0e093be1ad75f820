package ingestion

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/maivenlabs/relevancy/core"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// fieldError ties a parse failure to the CSV column it came from.
type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.reason)
}

func failf(field, format string, args ...any) *fieldError {
	return &fieldError{field: field, reason: fmt.Sprintf(format, args...)}
}

// updatedDateLayouts are tried in order for updated_date values. The
// canonical form is ISO-8601; files in the wild also carry the same form
// without a zone, and a space-separated variant.
var updatedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseUpdatedDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range updatedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", value)
}

// parsePublishedDate parses the DD/MM/YYYY date convention of policy files.
func parsePublishedDate(value string) (time.Time, error) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("not a DD/MM/YYYY date: %q", value)
	}
	return t.UTC(), nil
}

// parseActive maps the status column to a flag. Only the literal "active"
// (case-insensitive) is active; everything else, including unknown states,
// is inactive.
func parseActive(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "active")
}

// stripHTML removes markup tags and collapses all runs of whitespace to
// single spaces.
func stripHTML(value string) string {
	text := htmlTagPattern.ReplaceAllString(value, "")
	return strings.Join(strings.Fields(text), " ")
}

// parseTopics decodes the topics column, a JSON array of strings, trimming
// each entry.
func parseTopics(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	var topics []string
	if err := json.Unmarshal([]byte(value), &topics); err != nil {
		return nil, fmt.Errorf("not a JSON string array: %q", value)
	}
	for i, topic := range topics {
		topics[i] = strings.TrimSpace(topic)
	}
	return topics, nil
}

// checkSourceURL validates http(s) URL syntax. Reachability is out of
// scope.
func checkSourceURL(value string) error {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("not a URL: %q", value)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("not an http(s) URL: %q", value)
	}
	return nil
}

// policyID resolves a policy's ID. Numeric ids are used directly; string
// ids (the original corpus uses short UUIDs) and missing ids are hashed to
// a stable content-derived value.
func policyID(raw, name, sourceURL string) core.ID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return core.IDFromContent(sourceURL + name)
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil && n > 0 {
		return core.ID(n)
	}
	return core.IDFromContent(raw)
}

// row is one CSV record keyed by header name.
type row map[string]string

func parseCompanyRow(r row) (*core.Company, *fieldError) {
	id, err := strconv.ParseUint(strings.TrimSpace(r["company_id"]), 10, 64)
	if err != nil || id == 0 {
		return nil, failf("company_id", "not a positive integer: %q", r["company_id"])
	}

	lastLogin, err := parseUpdatedDate(r["last_login"])
	if err != nil {
		return nil, failf("last_login", "%v", err)
	}

	company := &core.Company{
		Id:                    core.ID(id),
		Name:                  strings.TrimSpace(r["name"]),
		OperatingJurisdiction: strings.TrimSpace(r["operating_jurisdiction"]),
		Sector:                strings.TrimSpace(r["sector"]),
		LastLogin:             lastLogin,
	}

	if err := core.ValidateCompany(company); err != nil {
		return nil, companyValidationFailure(company, err)
	}
	return company, nil
}

func companyValidationFailure(company *core.Company, err error) *fieldError {
	switch {
	case company.Name == "":
		return failf("name", "%v", err)
	case !core.IsRegionCode(company.OperatingJurisdiction):
		return failf("operating_jurisdiction", "%v", err)
	case company.Sector == "":
		return failf("sector", "%v", err)
	default:
		return failf("last_login", "%v", err)
	}
}

func parsePolicyRow(r row) (*core.Policy, *fieldError) {
	published, err := parsePublishedDate(r["published_date"])
	if err != nil {
		return nil, failf("published_date", "%v", err)
	}

	updated, err := parseUpdatedDate(r["updated_date"])
	if err != nil {
		return nil, failf("updated_date", "%v", err)
	}

	topics, err := parseTopics(r["topics"])
	if err != nil {
		return nil, failf("topics", "%v", err)
	}

	sourceURL := strings.TrimSpace(r["source_url"])
	if err := checkSourceURL(sourceURL); err != nil {
		return nil, failf("source_url", "%v", err)
	}

	name := strings.TrimSpace(r["name"])
	policy := &core.Policy{
		Id:            policyID(r["id"], name, sourceURL),
		Name:          name,
		Geography:     strings.TrimSpace(r["geography"]),
		Sector:        strings.TrimSpace(r["sectors"]),
		PublishedDate: published,
		UpdatedDate:   updated,
		Active:        parseActive(r["status"]),
		Description:   stripHTML(r["description"]),
		Topics:        topics,
		SourceURL:     sourceURL,
	}

	if err := core.ValidatePolicy(policy); err != nil {
		return nil, policyValidationFailure(policy, err)
	}
	return policy, nil
}

func policyValidationFailure(policy *core.Policy, err error) *fieldError {
	switch {
	case policy.Name == "":
		return failf("name", "%v", err)
	case policy.Geography != "" && !core.IsRegionCode(policy.Geography):
		return failf("geography", "%v", err)
	default:
		return failf("sectors", "%v", err)
	}
}
