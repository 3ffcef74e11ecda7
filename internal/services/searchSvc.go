package services

import (
	"context"
	"strings"

	"github.com/awcullen/opcua/ua"
	"github.com/sirupsen/logrus"

	"github.com/amine-amaach/uaWalker/internal/config"
	"github.com/amine-amaach/uaWalker/internal/model"
)

// searchAnchors are the fixed roots every pass starts from. Together
// they cover the instance space, the server object, and the type space.
var searchAnchors = []ua.NodeID{
	ua.ObjectIDObjectsFolder,
	ua.ObjectIDServer,
	ua.ObjectIDTypesFolder,
}

// SearchSvc finds nodes by name without any server-side query service:
// it escalates through three traversal passes, trading latency for
// completeness, and stops at the first pass that yields matches.
type SearchSvc struct {
	walker  *WalkerSvc
	budgets config.Search
	log     *logrus.Logger
}

func NewSearchSvc(walker *WalkerSvc, budgets config.Search, log *logrus.Logger) *SearchSvc {
	if budgets.QuickDepth <= 0 {
		budgets.QuickDepth = 3
	}
	if budgets.BroadDepth <= 0 {
		budgets.BroadDepth = 5
	}
	if budgets.MaxNodes <= 0 {
		budgets.MaxNodes = 500
	}
	if budgets.MaxQueue <= 0 {
		budgets.MaxQueue = 200
	}
	return &SearchSvc{walker: walker, budgets: budgets, log: log}
}

// Search runs the quick, broad, and deep passes in turn. filter
// restricts matches to one node class; NodeClassUnspecified matches
// all. An exhausted search returns an empty slice and no error.
func (s *SearchSvc) Search(ctx context.Context, term string, filter ua.NodeClass) ([]model.SearchMatch, error) {
	passes := []struct {
		name   string
		budget model.Budget
	}{
		{"quick", model.Budget{MaxDepth: s.budgets.QuickDepth}},
		{"broad", model.Budget{MaxDepth: s.budgets.BroadDepth}},
		{"deep", model.Budget{MaxNodes: s.budgets.MaxNodes, MaxQueue: s.budgets.MaxQueue}},
	}

	for _, pass := range passes {
		matches, err := s.runPass(ctx, term, filter, pass.budget)
		if err != nil {
			return matches, err
		}
		s.log.WithFields(logrus.Fields{
			"pass":    pass.name,
			"term":    term,
			"matches": len(matches),
		}).Debugln("Search pass finished")
		if len(matches) > 0 {
			return matches, nil
		}
	}
	return nil, nil
}

// runPass walks from the anchors under the given budget, collecting
// matches. The first exact match ends the pass without exhausting the
// remaining frontier; partial matches found before it are retained.
func (s *SearchSvc) runPass(ctx context.Context, term string, filter ua.NodeClass, budget model.Budget) ([]model.SearchMatch, error) {
	var matches []model.SearchMatch
	seen := make(map[ua.NodeID]struct{})

	_, err := s.walker.walk(ctx, searchAnchors, budget,
		func(parent ua.NodeID, _ int, ref model.ChildReference) bool {
			exact, partial := matchName(ref, term)
			if !partial {
				return true
			}
			if filter != ua.NodeClassUnspecified && ref.NodeClass != filter {
				return true
			}
			if _, dup := seen[ref.ID]; dup {
				return true
			}
			seen[ref.ID] = struct{}{}
			matches = append(matches, model.SearchMatch{
				ID:          ref.ID,
				BrowseName:  ref.BrowseName,
				DisplayName: ref.DisplayName,
				NodeClass:   ref.NodeClass,
				Parent:      parent,
				Exact:       exact,
			})
			return !exact
		})
	return matches, err
}

// matchName checks the display name and the browse name against the
// term, case-insensitively. An exact hit on either name counts as
// exact, even if the other name only matches partially.
func matchName(ref model.ChildReference, term string) (exact, partial bool) {
	t := strings.ToLower(term)
	for _, name := range []string{ref.DisplayName, ref.BrowseName.Name} {
		n := strings.ToLower(name)
		if n == t {
			return true, true
		}
		if strings.Contains(n, t) {
			partial = true
		}
	}
	return false, partial
}
