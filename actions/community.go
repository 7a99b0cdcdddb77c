package actions

import (
	"onuze-cli/api"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

// JoinCommunity optimistically flips membership and bumps the member count,
// then issues the request.
func JoinCommunity(community *shared.Community) *shared.ApiError {
	if currentUserId() == "" {
		return &shared.ApiError{Type: shared.ApiErrorTypeUnauthorized, Msg: "sign in to join communities"}
	}

	gateKey := "community:" + community.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevMember := community.IsMember
	prevCount := community.MemberCount

	community.IsMember = true
	community.MemberCount = prevCount + 1
	projectMembership(community.Id, true, community.MemberCount)

	if apiErr := api.Client.JoinCommunity(community.Path); apiErr != nil {
		community.IsMember = prevMember
		community.MemberCount = prevCount
		projectMembership(community.Id, prevMember, prevCount)
		return apiErr
	}

	return nil
}

// LeaveCommunity optimistically drops membership; the member count is
// floored at zero.
func LeaveCommunity(community *shared.Community) *shared.ApiError {
	if currentUserId() == "" {
		return &shared.ApiError{Type: shared.ApiErrorTypeUnauthorized, Msg: "sign in first"}
	}

	gateKey := "community:" + community.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevMember := community.IsMember
	prevCount := community.MemberCount

	community.IsMember = false
	community.MemberCount = prevCount - 1
	if community.MemberCount < 0 {
		community.MemberCount = 0
	}
	projectMembership(community.Id, false, community.MemberCount)

	if apiErr := api.Client.LeaveCommunity(community.Path); apiErr != nil {
		community.IsMember = prevMember
		community.MemberCount = prevCount
		projectMembership(community.Id, prevMember, prevCount)
		return apiErr
	}

	return nil
}

func projectMembership(communityId string, isMember bool, memberCount int) {
	stream.Communities.UpdateItem(communityId, func(c *shared.Community) {
		c.IsMember = isMember
		c.MemberCount = memberCount
	})
}
