package search

import (
	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/query"
)

// RouteMonitor provides hooks to observe the routing process.
// Implement this interface to track which strategies were tried and why.
type RouteMonitor interface {
	Start(q string)
	AfterAnalysis(analysis query.Analysis)
	StrategySelected(searchType string)
	StrategyEmpty(searchType string)
	StrategyFailed(searchType string, err error)
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of RouteMonitor
type noopMonitor struct{}

var _ RouteMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterAnalysis(_ query.Analysis)      {}
func (n *noopMonitor) StrategySelected(_ string)           {}
func (n *noopMonitor) StrategyEmpty(_ string)              {}
func (n *noopMonitor) StrategyFailed(_ string, _ error)    {}
func (n *noopMonitor) Finish(_ *core.SearchResult)         {}
