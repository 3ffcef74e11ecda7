package services

import (
	"context"

	"github.com/awcullen/opcua/ua"
	"github.com/gammazero/deque"
	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amine-amaach/uaWalker/internal/model"
	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

// WalkerSvc walks the remote address space one browse at a time. The
// namespace is an unbounded, possibly cyclic graph discovered lazily, so
// the walk keeps only a visited set and an explicit frontier queue,
// never an eager in-memory copy of the graph.
type WalkerSvc struct {
	browser Browser
	log     *logrus.Logger
}

func NewWalkerSvc(browser Browser, log *logrus.Logger) *WalkerSvc {
	return &WalkerSvc{browser: browser, log: log}
}

// Stats counts the work of one walk, for diagnostics.
type Stats struct {
	// Browsed is the number of nodes whose children were requested.
	Browsed int
	// Skipped is the number of nodes whose browse returned a bad status
	// and were treated as having zero children.
	Skipped int
}

// visitFunc receives every discovered reference together with the node
// whose browse produced it and the reference's depth. Returning false
// stops the walk early; the result accumulated so far stays valid.
type visitFunc func(parent ua.NodeID, depth int, ref model.ChildReference) bool

type frontierEntry struct {
	id    ua.NodeID
	depth int
}

// walk is the one traversal primitive shared by the flat, tree, and
// search variants; they differ only in the visit callback.
//
// Invariants: a node id enters the visited set exactly once, before its
// children are enqueued, which guarantees termination over cyclic
// references. Per-node browse failures are consumed here and never
// abort the walk; only transport failures do, and then the partial
// result already delivered through visit remains well formed.
func (w *WalkerSvc) walk(ctx context.Context, roots []ua.NodeID, budget model.Budget, visit visitFunc) (Stats, error) {
	var stats Stats
	visited := make(map[ua.NodeID]struct{})
	var frontier deque.Deque[frontierEntry]

	wid, _ := nanoid.New()
	wlog := w.log.WithField("walk", wid)

	for _, root := range roots {
		frontier.PushBack(frontierEntry{id: root, depth: 0})
	}

	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			wlog.WithField("browsed", stats.Browsed).Debugln("Walk cancelled")
			return stats, err
		}

		entry := frontier.PopFront()
		if _, seen := visited[entry.id]; seen {
			continue
		}
		visited[entry.id] = struct{}{}

		if budget.MaxNodes > 0 && stats.Browsed >= budget.MaxNodes {
			wlog.WithField("max_nodes", budget.MaxNodes).Debugln("Node budget exhausted")
			return stats, nil
		}
		stats.Browsed++

		refs, err := w.browser.BrowseChildren(ctx, entry.id)
		if err != nil {
			var be *BrowseError
			if errors.As(err, &be) {
				// Inaccessible or unknown node: zero children, keep walking.
				stats.Skipped++
				wlog.WithFields(logrus.Fields{
					"node":   nodeid.Format(entry.id),
					"status": be.Code,
				}).Warnln("Browse failed, skipping node")
				continue
			}
			wlog.WithError(err).Errorln("Transport failure, aborting walk")
			return stats, err
		}

		childDepth := entry.depth + 1
		for _, ref := range refs {
			if !visit(entry.id, childDepth, ref) {
				return stats, nil
			}
			if !budget.DepthAllows(childDepth) {
				continue // reported as a leaf, never browsed
			}
			if _, seen := visited[ref.ID]; seen {
				continue
			}
			if budget.MaxQueue > 0 && frontier.Len() >= budget.MaxQueue {
				continue
			}
			frontier.PushBack(frontierEntry{id: ref.ID, depth: childDepth})
		}
	}
	return stats, nil
}

// BrowseFlat walks from root down to maxDepth and returns every
// discovered node once, in discovery order. Callers that display the
// list sort it with nodeid.Compare; the walk itself guarantees no order.
func (w *WalkerSvc) BrowseFlat(ctx context.Context, root ua.NodeID, maxDepth int) ([]model.ChildReference, Stats, error) {
	var out []model.ChildReference
	reported := make(map[ua.NodeID]struct{})

	stats, err := w.walk(ctx, []ua.NodeID{root}, model.Budget{MaxDepth: maxDepth},
		func(_ ua.NodeID, _ int, ref model.ChildReference) bool {
			if _, dup := reported[ref.ID]; !dup {
				reported[ref.ID] = struct{}{}
				out = append(out, ref)
			}
			return true
		})
	return out, stats, err
}

// BrowseTree runs the identical traversal but preserves the
// parent/child structure. Children keep the order the server returned
// them in. The returned root node carries the starting id and no
// descriptive fields, since no browse produced it.
func (w *WalkerSvc) BrowseTree(ctx context.Context, root ua.NodeID, maxDepth int) (*model.TreeNode, Stats, error) {
	rootNode := &model.TreeNode{Ref: model.ChildReference{ID: root, NodeClass: ua.NodeClassUnspecified}}
	owners := map[ua.NodeID]*model.TreeNode{root: rootNode}

	stats, err := w.walk(ctx, []ua.NodeID{root}, model.Budget{MaxDepth: maxDepth},
		func(parent ua.NodeID, _ int, ref model.ChildReference) bool {
			node := &model.TreeNode{Ref: ref}
			if p, ok := owners[parent]; ok {
				p.Children = append(p.Children, node)
			}
			// First discovery claims the expansion slot; later
			// references to the same node stay leaves.
			if _, claimed := owners[ref.ID]; !claimed {
				owners[ref.ID] = node
			}
			return true
		})
	return rootNode, stats, err
}
