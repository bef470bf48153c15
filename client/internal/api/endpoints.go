package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/types"
)

// Resource names a logical API entity.
type Resource string

const (
	ResourceProfile Resource = "profile"
	ResourceDevice  Resource = "device"
	ResourceGoal    Resource = "goal"
	ResourceSummary Resource = "summary"
	ResourceSession Resource = "session"
	ResourceSleep   Resource = "sleep"
)

// OAuth paths.
const (
	AuthorizePath = "/auth/dialog/authorize"
	ExchangePath  = "/auth/tokens/exchange"
)

// DefaultUserID addresses the user owning the bearer token.
const DefaultUserID = "me"

var (
	// ErrUnknownResource is returned for a Resource missing from the endpoint table.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrNoItemEndpoint is returned when an id is given for a resource that
	// has no per-item endpoint (summary).
	ErrNoItemEndpoint = errors.New("resource has no item endpoint")
)

type endpoint struct {
	collection string
	item       string // empty when the resource has no per-item form
}

var endpoints = map[Resource]endpoint{
	ResourceProfile: {
		collection: "/move/resource/v1/user/:userId/profile",
		item:       "/move/resource/v1/user/:userId/profile/:id",
	},
	ResourceDevice: {
		collection: "/move/resource/v1/user/:userId/device",
		item:       "/move/resource/v1/user/:userId/device/:id",
	},
	ResourceGoal: {
		collection: "/move/resource/v1/user/:userId/activity/goals",
		item:       "/move/resource/v1/user/:userId/activity/goals/:id",
	},
	ResourceSummary: {
		collection: "/move/resource/v1/user/:userId/activity/summary",
	},
	ResourceSession: {
		collection: "/move/resource/v1/user/:userId/activity/sessions",
		item:       "/move/resource/v1/user/:userId/activity/sessions/:id",
	},
	ResourceSleep: {
		collection: "/move/resource/v1/user/:userId/activity/sleeps",
		item:       "/move/resource/v1/user/:userId/activity/sleeps/:id",
	},
}

// Resources lists every resource in the endpoint table.
func Resources() []Resource {
	return []Resource{ResourceProfile, ResourceDevice, ResourceGoal, ResourceSummary, ResourceSession, ResourceSleep}
}

// resolved is a resource request with its reserved parameters consumed.
type resolved struct {
	path  string
	query url.Values
	token string
}

// resolve picks the template for r, substitutes :id and :userId, and splits
// the token from the query parameters. params is not modified.
func resolve(r Resource, params types.Params) (resolved, error) {
	ep, ok := endpoints[r]
	if !ok {
		return resolved{}, fmt.Errorf("%w: %q", ErrUnknownResource, string(r))
	}
	rest := params.Clone()

	tmpl := ep.collection
	id, hasID := rest.Take(types.ParamID)
	if hasID {
		if ep.item == "" {
			return resolved{}, fmt.Errorf("%w: %s", ErrNoItemEndpoint, r)
		}
		tmpl = ep.item
	}
	userID, ok := rest.Take(types.ParamUserID)
	if !ok {
		userID = DefaultUserID
	}
	token, _ := rest.Take(types.ParamToken)

	segs := strings.Split(tmpl, "/")
	for i, s := range segs {
		switch s {
		case ":userId":
			segs[i] = url.PathEscape(userID)
		case ":id":
			segs[i] = url.PathEscape(id)
		}
	}

	q := make(url.Values, len(rest))
	for k, v := range rest {
		q.Set(k, v)
	}
	return resolved{path: strings.Join(segs, "/"), query: q, token: token}, nil
}
