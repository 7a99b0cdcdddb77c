package actions

import (
	"onuze-cli/api"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

// Moderator actions. Each projects the expected post-success state, issues
// the request, and restores the snapshot on failure.

func LockPost(post *shared.Post, reason string) *shared.ApiError {
	gateKey := "post:" + post.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevLocked := post.IsLocked
	prevReason := post.LockedReason

	setLocked := func(locked bool, reason string) {
		post.IsLocked = locked
		post.LockedReason = reason
		stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
			p.IsLocked = locked
			p.LockedReason = reason
		})
	}

	setLocked(true, reason)

	if apiErr := api.Client.LockPost(post.Path, shared.LockPostRequest{Reason: reason}); apiErr != nil {
		setLocked(prevLocked, prevReason)
		return apiErr
	}

	return nil
}

func UnlockPost(post *shared.Post) *shared.ApiError {
	gateKey := "post:" + post.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevLocked := post.IsLocked
	prevReason := post.LockedReason

	post.IsLocked = false
	post.LockedReason = ""
	stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
		p.IsLocked = false
		p.LockedReason = ""
	})

	if apiErr := api.Client.UnlockPost(post.Path); apiErr != nil {
		post.IsLocked = prevLocked
		post.LockedReason = prevReason
		stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
			p.IsLocked = prevLocked
			p.LockedReason = prevReason
		})
		return apiErr
	}

	return nil
}

func PinPost(post *shared.Post, pinned bool) *shared.ApiError {
	gateKey := "post:" + post.Path
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	prevPinned := post.IsPinned

	post.IsPinned = pinned
	stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
		p.IsPinned = pinned
	})

	var apiErr *shared.ApiError
	if pinned {
		apiErr = api.Client.PinPost(post.Path)
	} else {
		apiErr = api.Client.UnpinPost(post.Path)
	}

	if apiErr != nil {
		post.IsPinned = prevPinned
		stream.Posts.UpdateItem(post.Path, func(p *shared.Post) {
			p.IsPinned = prevPinned
		})
		return apiErr
	}

	return nil
}

// BanUser removes the target from this community's cached member list
// optimistically. Other communities' member lists are untouched. The
// banned-users listing is server truth and refetched on demand.
func BanUser(community shared.Community, userId string, req shared.BanUserRequest) *shared.ApiError {
	gateKey := "ban:" + community.Path + ":" + req.Username
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	var restore func()
	if members := stream.Members.Peek(stream.MembersKey(community.Path)); members != nil {
		restore = members.RemoveItem(userId)
	}

	if apiErr := api.Client.BanUser(community.Path, req); apiErr != nil {
		if restore != nil {
			restore()
		}
		return apiErr
	}

	stream.Banned.Refetch(stream.BannedKey(community.Path))
	return nil
}

func UnbanUser(community shared.Community, bannedRecordId, username string) *shared.ApiError {
	gateKey := "ban:" + community.Path + ":" + username
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	restore := stream.Banned.RemoveItem(bannedRecordId)

	if apiErr := api.Client.UnbanUser(community.Path, shared.UnbanUserRequest{Username: username}); apiErr != nil {
		restore()
		return apiErr
	}

	return nil
}

// ApproveBanAppeal lifts the ban: the appeal leaves the pending list and
// the user leaves the banned list, both optimistically.
func ApproveBanAppeal(appeal shared.BanAppeal, bannedRecordId string) *shared.ApiError {
	gateKey := "appeal:" + appeal.Id
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	restoreAppeal := stream.BanAppeals.RemoveItem(appeal.Id)
	var restoreBanned func()
	if bannedRecordId != "" {
		restoreBanned = stream.Banned.RemoveItem(bannedRecordId)
	}

	if apiErr := api.Client.ApproveBanAppeal(appeal.Id); apiErr != nil {
		restoreAppeal()
		if restoreBanned != nil {
			restoreBanned()
		}
		return apiErr
	}

	return nil
}

func RejectBanAppeal(appeal shared.BanAppeal) *shared.ApiError {
	gateKey := "appeal:" + appeal.Id
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	restore := stream.BanAppeals.RemoveItem(appeal.Id)

	if apiErr := api.Client.RejectBanAppeal(appeal.Id); apiErr != nil {
		restore()
		return apiErr
	}

	return nil
}

func ResolveReport(report shared.Report, note string) *shared.ApiError {
	gateKey := "report:" + report.Id
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	restore := stream.Reports.RemoveItem(report.Id)

	if apiErr := api.Client.ResolveReport(report.Id, shared.ResolveReportRequest{Note: note}); apiErr != nil {
		restore()
		return apiErr
	}

	return nil
}

func RejectReport(report shared.Report) *shared.ApiError {
	gateKey := "report:" + report.Id
	if !beginMutation(gateKey) {
		return ErrMutationInFlight
	}
	defer endMutation(gateKey)

	restore := stream.Reports.RemoveItem(report.Id)

	if apiErr := api.Client.RejectReport(report.Id); apiErr != nil {
		restore()
		return apiErr
	}

	return nil
}
