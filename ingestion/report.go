package ingestion

// RowFailure records one skipped CSV row: the 1-based line number, the
// field that failed, and the reason.
type RowFailure struct {
	Line   int
	Field  string
	Reason string
}

// Report summarizes one load: how many data rows the file had, how many
// were stored, and why the rest were skipped.
type Report struct {
	Total    int
	Loaded   int
	Failures []RowFailure
}

// FailuresByField counts the skipped rows per failing field.
func (r *Report) FailuresByField() map[string]int {
	counts := make(map[string]int, len(r.Failures))
	for _, failure := range r.Failures {
		counts[failure.Field]++
	}
	return counts
}
