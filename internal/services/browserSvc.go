package services

import (
	"context"
	"fmt"

	"github.com/awcullen/opcua/ua"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amine-amaach/uaWalker/internal/model"
	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

// Browser is the single abstraction over the remote "browse one node"
// primitive. The traversal and search engines never talk to the
// transport directly; they only see this.
type Browser interface {
	// BrowseChildren returns the forward hierarchical references of one
	// node. A good status with no references yields an empty slice and a
	// nil error. A bad status yields a *BrowseError; anything else is a
	// transport failure.
	BrowseChildren(ctx context.Context, id ua.NodeID) ([]model.ChildReference, error)
}

// BrowseError reports a bad status for one browsed node: the node is
// inaccessible, unknown, or browsing it is unsupported. Traversals
// recover from it by treating the node as having zero children.
type BrowseError struct {
	Node ua.NodeID
	Code ua.StatusCode
}

func (e *BrowseError) Error() string {
	return fmt.Sprintf("browse of %s failed: 0x%08X", nodeid.Format(e.Node), uint32(e.Code))
}

// browseCaller is the slice of the session the gateway needs.
type browseCaller interface {
	Browse(ctx context.Context, req *ua.BrowseRequest) (*ua.BrowseResponse, error)
}

// BrowserSvc implements Browser over an activated session.
type BrowserSvc struct {
	session browseCaller
	log     *logrus.Logger
}

func NewBrowserSvc(session browseCaller, log *logrus.Logger) *BrowserSvc {
	return &BrowserSvc{session: session, log: log}
}

const browseResultMaskAll = uint32(ua.BrowseResultMaskReferenceTypeID |
	ua.BrowseResultMaskIsForward |
	ua.BrowseResultMaskNodeClass |
	ua.BrowseResultMaskBrowseName |
	ua.BrowseResultMaskDisplayName |
	ua.BrowseResultMaskTypeDefinition)

func (b *BrowserSvc) BrowseChildren(ctx context.Context, id ua.NodeID) ([]model.ChildReference, error) {
	req := &ua.BrowseRequest{
		NodesToBrowse: []ua.BrowseDescription{
			{
				NodeID:          id,
				BrowseDirection: ua.BrowseDirectionForward,
				ReferenceTypeID: ua.ReferenceTypeIDHierarchicalReferences,
				IncludeSubtypes: true,
				NodeClassMask:   0, // all classes
				ResultMask:      browseResultMaskAll,
			},
		},
	}

	res, err := b.session.Browse(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "browsing %s", nodeid.Format(id))
	}
	if len(res.Results) == 0 {
		return nil, &BrowseError{Node: id, Code: ua.BadUnexpectedError}
	}
	result := res.Results[0]
	if result.StatusCode.IsBad() {
		return nil, &BrowseError{Node: id, Code: result.StatusCode}
	}

	refs := make([]model.ChildReference, 0, len(result.References))
	for _, rd := range result.References {
		child := ua.ToNodeID(rd.NodeID, nil)
		if child == nil {
			b.log.WithField("node", nodeid.Format(id)).Debugln("Skipping reference to remote server node")
			continue
		}
		refs = append(refs, model.ChildReference{
			ID:             child,
			BrowseName:     rd.BrowseName,
			DisplayName:    rd.DisplayName.Text,
			NodeClass:      rd.NodeClass,
			TypeDefinition: ua.ToNodeID(rd.TypeDefinition, nil),
		})
	}
	return refs, nil
}

// OwnerOfMethod finds the object owning a method node via one inverse
// HasComponent browse. Used when the caller supplies a method node id
// directly instead of a name.
func (b *BrowserSvc) OwnerOfMethod(ctx context.Context, methodID ua.NodeID) (ua.NodeID, error) {
	req := &ua.BrowseRequest{
		NodesToBrowse: []ua.BrowseDescription{
			{
				NodeID:          methodID,
				BrowseDirection: ua.BrowseDirectionInverse,
				ReferenceTypeID: ua.ReferenceTypeIDHasComponent,
				IncludeSubtypes: true,
				NodeClassMask:   uint32(ua.NodeClassObject),
				ResultMask:      browseResultMaskAll,
			},
		},
	}
	res, err := b.session.Browse(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "browsing owner of %s", nodeid.Format(methodID))
	}
	if len(res.Results) == 0 || res.Results[0].StatusCode.IsBad() || len(res.Results[0].References) == 0 {
		return nil, errors.Errorf("no owning object found for method %s", nodeid.Format(methodID))
	}
	return ua.ToNodeID(res.Results[0].References[0].NodeID, nil), nil
}
