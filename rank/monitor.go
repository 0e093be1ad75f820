package rank

import "github.com/maivenlabs/relevancy/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps while companies are
// matched against the policy corpus.
type MatchMonitor interface {
	Start(company *core.Company)
	AfterRetrieval(company *core.Company, candidates []core.Candidate)
	AfterJudge(company *core.Company, ranked []core.RankedPolicy)
	MatchFailed(company *core.Company, err error)
	Finish(ranking *core.CompanyRanking)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Company)                               {}
func (n *noopMonitor) AfterRetrieval(_ *core.Company, _ []core.Candidate)  {}
func (n *noopMonitor) AfterJudge(_ *core.Company, _ []core.RankedPolicy)   {}
func (n *noopMonitor) MatchFailed(_ *core.Company, _ error)                {}
func (n *noopMonitor) Finish(_ *core.CompanyRanking)                       {}
