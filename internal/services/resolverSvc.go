package services

import (
	"context"
	"fmt"

	"github.com/awcullen/opcua/ua"
	"github.com/sirupsen/logrus"

	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

// MethodNotFoundError reports that a method name search completed
// normally but found nothing.
type MethodNotFoundError struct {
	Name string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("method %q not found", e.Name)
}

// ResolverSvc locates a callable method and the object owning it,
// given only the method's name.
type ResolverSvc struct {
	search *SearchSvc
	log    *logrus.Logger
}

func NewResolverSvc(search *SearchSvc, log *logrus.Logger) *ResolverSvc {
	return &ResolverSvc{search: search, log: log}
}

// ResolveMethod searches for a method node by name and returns its id
// together with the id of the owning object. Methods are discovered as
// forward hierarchical children of their owner, so the owner is the
// parent recorded with the match. The first exact match wins; with no
// exact match, the first match in discovery order does.
func (r *ResolverSvc) ResolveMethod(ctx context.Context, name string) (methodID, objectID ua.NodeID, err error) {
	matches, err := r.search.Search(ctx, name, ua.NodeClassMethod)
	if err != nil {
		return nil, nil, err
	}
	if len(matches) == 0 {
		return nil, nil, &MethodNotFoundError{Name: name}
	}

	chosen := matches[0]
	for _, m := range matches {
		if m.Exact {
			chosen = m
			break
		}
	}
	r.log.WithFields(logrus.Fields{
		"method": nodeid.Format(chosen.ID),
		"object": nodeid.Format(chosen.Parent),
		"name":   chosen.DisplayName,
	}).Debugln("Resolved method")
	return chosen.ID, chosen.Parent, nil
}
