package client

import (
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/api"
	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	Params   = types.Params
	Resource = api.Resource

	// Domain entities
	Profile     = types.Profile
	Device      = types.Device
	Goal        = types.Goal
	Summary     = types.Summary
	SummaryDay  = types.SummaryDay
	Session     = types.Session
	Sleep       = types.Sleep
	SleepDetail = types.SleepDetail

	// Responses
	Goals         = types.Goals
	Sessions      = types.Sessions
	Sleeps        = types.Sleeps
	TokenResponse = types.TokenResponse
)

// Resources.
const (
	ResourceProfile = api.ResourceProfile
	ResourceDevice  = api.ResourceDevice
	ResourceGoal    = api.ResourceGoal
	ResourceSummary = api.ResourceSummary
	ResourceSession = api.ResourceSession
	ResourceSleep   = api.ResourceSleep
)

// Reserved Params keys.
const (
	ParamID     = types.ParamID
	ParamUserID = types.ParamUserID
	ParamToken  = types.ParamToken
)

// Resources lists every resource the client can fetch.
func Resources() []Resource { return api.Resources() }
