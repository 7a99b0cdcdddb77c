package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"onuze-cli/actions"
	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/format"
	"onuze-cli/shared"
	"onuze-cli/stream"
	"onuze-cli/term"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Moderator actions for a community",
}

var lockCmd = &cobra.Command{
	Use:   "lock [post]",
	Short: "Lock a post against new comments",
	Args:  cobra.ExactArgs(1),
	Run:   lockPost,
}

var unlockCmd = &cobra.Command{
	Use:   "unlock [post]",
	Short: "Unlock a post",
	Args:  cobra.ExactArgs(1),
	Run:   unlockPost,
}

var pinCmd = &cobra.Command{
	Use:   "pin [post]",
	Short: "Pin a post to the top of its community",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pinPost(args[0], true)
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin [post]",
	Short: "Unpin a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pinPost(args[0], false)
	},
}

var banCmd = &cobra.Command{
	Use:   "ban [community] [username]",
	Short: "Ban a user from a community",
	Args:  cobra.ExactArgs(2),
	Run:   banUser,
}

var unbanCmd = &cobra.Command{
	Use:   "unban [community] [username]",
	Short: "Lift a user's ban",
	Args:  cobra.ExactArgs(2),
	Run:   unbanUser,
}

var bannedCmd = &cobra.Command{
	Use:   "banned [community]",
	Short: "List banned users",
	Args:  cobra.ExactArgs(1),
	Run:   listBanned,
}

var membersCmd = &cobra.Command{
	Use:   "members [community]",
	Short: "List community members",
	Args:  cobra.ExactArgs(1),
	Run:   listMembers,
}

var appealsCmd = &cobra.Command{
	Use:   "appeals [community]",
	Short: "List pending ban appeals",
	Args:  cobra.ExactArgs(1),
	Run:   listAppeals,
}

var approveAppealCmd = &cobra.Command{
	Use:   "approve-appeal [community] [appeal-id]",
	Short: "Approve a ban appeal and lift the ban",
	Args:  cobra.ExactArgs(2),
	Run:   approveAppeal,
}

var rejectAppealCmd = &cobra.Command{
	Use:   "reject-appeal [community] [appeal-id]",
	Short: "Reject a ban appeal",
	Args:  cobra.ExactArgs(2),
	Run:   rejectAppeal,
}

var reportsCmd = &cobra.Command{
	Use:   "reports [community]",
	Short: "List pending reports",
	Args:  cobra.ExactArgs(1),
	Run:   listReports,
}

var resolveReportCmd = &cobra.Command{
	Use:   "resolve-report [community] [report-id]",
	Short: "Resolve a report",
	Args:  cobra.ExactArgs(2),
	Run:   resolveReport,
}

var rejectReportCmd = &cobra.Command{
	Use:   "reject-report [community] [report-id]",
	Short: "Reject a report",
	Args:  cobra.ExactArgs(2),
	Run:   rejectReport,
}

var rulesCmd = &cobra.Command{
	Use:   "rules [community]",
	Short: "Manage community rules",
	Args:  cobra.ExactArgs(1),
	Run:   manageRules,
}

var moderatorsCmd = &cobra.Command{
	Use:   "moderators [community]",
	Short: "Manage community moderators",
	Args:  cobra.ExactArgs(1),
	Run:   manageModerators,
}

var flairsCmd = &cobra.Command{
	Use:   "flairs [community]",
	Short: "List community flairs",
	Args:  cobra.ExactArgs(1),
	Run:   listFlairs,
}

func init() {
	RootCmd.AddCommand(modCmd)

	modCmd.AddCommand(lockCmd)
	modCmd.AddCommand(unlockCmd)
	modCmd.AddCommand(pinCmd)
	modCmd.AddCommand(unpinCmd)
	modCmd.AddCommand(banCmd)
	modCmd.AddCommand(unbanCmd)
	modCmd.AddCommand(bannedCmd)
	modCmd.AddCommand(membersCmd)
	modCmd.AddCommand(appealsCmd)
	modCmd.AddCommand(approveAppealCmd)
	modCmd.AddCommand(rejectAppealCmd)
	modCmd.AddCommand(reportsCmd)
	modCmd.AddCommand(resolveReportCmd)
	modCmd.AddCommand(rejectReportCmd)
	modCmd.AddCommand(rulesCmd)
	modCmd.AddCommand(moderatorsCmd)
	modCmd.AddCommand(flairsCmd)

	lockCmd.Flags().String("reason", "", "Reason shown on the locked post")

	banCmd.Flags().String("reason", "", "Ban reason")
	banCmd.Flags().Int("days", 0, "Ban duration in days (0 = permanent)")

	resolveReportCmd.Flags().String("note", "", "Resolution note")

	rulesCmd.Flags().String("add", "", "Add a rule with this title")
	rulesCmd.Flags().String("description", "", "Description for the added rule")
	rulesCmd.Flags().String("remove", "", "Remove a rule by id")

	moderatorsCmd.Flags().String("add", "", "Add a moderator by username")
	moderatorsCmd.Flags().String("remove", "", "Remove a moderator by user id")
}

// mustModerate loads the community and checks the stored identity is one
// of its moderators before offering mod actions. The server enforces the
// real check.
func mustModerate(arg string) *shared.Community {
	community := mustGetCommunity(arg)

	if !actions.CanModerate(*community) {
		term.OutputErrorAndExit("You don't moderate %s", community.Name)
	}

	return community
}

func lockPost(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	post := mustGetPost(args[0])
	reason, _ := cmd.Flags().GetString("reason")

	term.StartSpinner("")
	apiErr := actions.LockPost(post, reason)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error locking post")
	}

	fmt.Println("🔒 Post locked")
}

func unlockPost(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	post := mustGetPost(args[0])

	term.StartSpinner("")
	apiErr := actions.UnlockPost(post)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error unlocking post")
	}

	fmt.Println("🔓 Post unlocked")
}

func pinPost(arg string, pinned bool) {
	auth.MustResolveAuth()

	post := mustGetPost(arg)

	term.StartSpinner("")
	apiErr := actions.PinPost(post, pinned)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error updating pin")
	}

	if pinned {
		fmt.Println("📌 Post pinned")
	} else {
		fmt.Println("✅ Post unpinned")
	}
}

func banUser(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])
	username := args[1]

	reason, _ := cmd.Flags().GetString("reason")
	days, _ := cmd.Flags().GetInt("days")

	if reason == "" {
		var err error
		reason, err = term.GetRequiredUserStringInput("Ban reason:")
		if err != nil {
			term.OutputErrorAndExit("Error reading reason: %v", err)
		}
	}

	userId := ""
	for _, member := range stream.Members.Query(stream.MembersKey(community.Path)).Items() {
		if member.Username == username {
			userId = member.Id
			break
		}
	}

	term.StartSpinner("")
	apiErr := actions.BanUser(*community, userId, shared.BanUserRequest{
		Username:     username,
		Reason:       reason,
		DurationDays: days,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error banning user")
	}

	fmt.Printf("🚫 Banned %s from %s\n", username, community.Name)
}

func unbanUser(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])
	username := args[1]

	recordId := ""
	for _, banned := range stream.Banned.Query(stream.BannedKey(community.Path)).Items() {
		if banned.User.Username == username {
			recordId = banned.Id
			break
		}
	}
	if recordId == "" {
		term.OutputErrorAndExit("%s isn't banned from %s", username, community.Name)
	}

	term.StartSpinner("")
	apiErr := actions.UnbanUser(*community, recordId, username)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error unbanning user")
	}

	fmt.Printf("✅ Unbanned %s\n", username)
}

func listBanned(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])

	term.StartSpinner("")
	s := stream.Banned.Query(stream.BannedKey(community.Path))
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading banned users")
	}

	banned := s.Items()
	if len(banned) == 0 {
		fmt.Println("🤷‍♂️ Nobody is banned from", community.Name)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Username", "Reason", "Banned by", "When", "Until"})

	for _, b := range banned {
		until := "permanent"
		if b.BannedUntil != nil {
			until = format.Time(*b.BannedUntil)
		}
		table.Append([]string{
			b.User.Username,
			b.Reason,
			b.BannedBy.Username,
			format.Time(b.BannedAt),
			until,
		})
	}

	table.Render()
}

func listMembers(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])

	term.StartSpinner("")
	s := stream.Members.Query(stream.MembersKey(community.Path))
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading members")
	}

	members := s.Items()
	if len(members) == 0 {
		fmt.Println("🤷‍♂️ No members found")
		return
	}

	renderMembersTable(members)
}

func listAppeals(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])

	term.StartSpinner("")
	s := stream.BanAppeals.Query(stream.BanAppealsKey(community.Path))
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading ban appeals")
	}

	appeals := s.Items()
	if len(appeals) == 0 {
		fmt.Println("🤷‍♂️ No pending appeals for", community.Name)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Id", "Username", "Appeal", "When"})

	for _, a := range appeals {
		table.Append([]string{
			a.Id,
			a.User.Username,
			a.Content,
			format.Time(a.CreatedAt),
		})
	}

	table.Render()

	fmt.Println()
	term.PrintCustomCmd("", "mod approve-appeal", "", "approve an appeal and lift the ban")
	term.PrintCustomCmd("", "mod reject-appeal", "", "reject an appeal")
}

func approveAppeal(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])
	appealId := args[1]

	appeal := findAppeal(community.Path, appealId)

	// find the matching ban record so the banned list projection tracks
	bannedRecordId := ""
	for _, b := range stream.Banned.Query(stream.BannedKey(community.Path)).Items() {
		if b.User.Id == appeal.User.Id {
			bannedRecordId = b.Id
			break
		}
	}

	term.StartSpinner("")
	apiErr := actions.ApproveBanAppeal(*appeal, bannedRecordId)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error approving appeal")
	}

	fmt.Printf("✅ Approved %s's appeal\n", appeal.User.Username)
}

func rejectAppeal(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])
	appeal := findAppeal(community.Path, args[1])

	term.StartSpinner("")
	apiErr := actions.RejectBanAppeal(*appeal)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error rejecting appeal")
	}

	fmt.Printf("✅ Rejected %s's appeal\n", appeal.User.Username)
}

func findAppeal(communityPath, appealId string) *shared.BanAppeal {
	for _, a := range stream.BanAppeals.Query(stream.BanAppealsKey(communityPath)).Items() {
		if a.Id == appealId {
			return &a
		}
	}

	term.OutputErrorAndExit("Appeal %s not found", appealId)
	return nil
}

func listReports(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])

	term.StartSpinner("")
	s := stream.Reports.Query(stream.ReportsKey(community.Path))
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading reports")
	}

	reports := s.Items()
	if len(reports) == 0 {
		fmt.Println("🤷‍♂️ No pending reports for", community.Name)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Id", "Target", "Reason", "Reported by", "When"})

	for _, r := range reports {
		target := ""
		if r.Post != nil {
			target = "post: " + r.Post.Title
		} else if r.Comment != nil {
			target = "comment: " + truncate(r.Comment.Content, 40)
		}
		table.Append([]string{
			r.Id,
			target,
			r.Reason,
			r.ReportedBy.Username,
			format.Time(r.CreatedAt),
		})
	}

	table.Render()

	fmt.Println()
	term.PrintCustomCmd("", "mod resolve-report", "", "resolve a report")
	term.PrintCustomCmd("", "mod reject-report", "", "reject a report")
}

func resolveReport(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])
	report := findReport(community.Path, args[1])
	note, _ := cmd.Flags().GetString("note")

	term.StartSpinner("")
	apiErr := actions.ResolveReport(*report, note)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error resolving report")
	}

	fmt.Println("✅ Report resolved")
}

func rejectReport(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])
	report := findReport(community.Path, args[1])

	term.StartSpinner("")
	apiErr := actions.RejectReport(*report)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error rejecting report")
	}

	fmt.Println("✅ Report rejected")
}

func findReport(communityPath, reportId string) *shared.Report {
	for _, r := range stream.Reports.Query(stream.ReportsKey(communityPath)).Items() {
		if r.Id == reportId {
			return &r
		}
	}

	term.OutputErrorAndExit("Report %s not found", reportId)
	return nil
}

func manageRules(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])

	if title, _ := cmd.Flags().GetString("add"); title != "" {
		description, _ := cmd.Flags().GetString("description")

		term.StartSpinner("")
		rule, apiErr := api.Client.CreateRule(community.Path, shared.CreateRuleRequest{
			Title:       title,
			Description: description,
		})
		term.StopSpinner()

		if apiErr != nil {
			term.OutputApiError(apiErr, "Error adding rule")
		}

		fmt.Printf("✅ Added rule %d: %s\n", rule.Order, rule.Title)
		return
	}

	if ruleId, _ := cmd.Flags().GetString("remove"); ruleId != "" {
		term.StartSpinner("")
		apiErr := api.Client.DeleteRule(community.Path, ruleId)
		term.StopSpinner()

		if apiErr != nil {
			term.OutputApiError(apiErr, "Error removing rule")
		}

		fmt.Println("🗑️  Rule removed")
		return
	}

	term.StartSpinner("")
	rules, apiErr := api.Client.ListRules(community.Path)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error loading rules")
	}

	if len(rules) == 0 {
		fmt.Println("🤷‍♂️ No rules set for", community.Name)
		return
	}

	for _, rule := range rules {
		fmt.Printf("%d. [%s] %s\n", rule.Order, rule.Id, rule.Title)
		if rule.Description != "" {
			fmt.Println("   " + rule.Description)
		}
	}
}

func manageModerators(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])

	if username, _ := cmd.Flags().GetString("add"); username != "" {
		term.StartSpinner("")
		apiErr := api.Client.AddModerator(community.Path, shared.AddModeratorRequest{Username: username})
		term.StopSpinner()

		if apiErr != nil {
			term.OutputApiError(apiErr, "Error adding moderator")
		}

		fmt.Printf("✅ %s is now a moderator of %s\n", username, community.Name)
		return
	}

	if userId, _ := cmd.Flags().GetString("remove"); userId != "" {
		term.StartSpinner("")
		apiErr := api.Client.RemoveModerator(community.Path, userId)
		term.StopSpinner()

		if apiErr != nil {
			term.OutputApiError(apiErr, "Error removing moderator")
		}

		fmt.Println("✅ Moderator removed")
		return
	}

	term.StartSpinner("")
	moderators, apiErr := api.Client.ListModerators(community.Path)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error loading moderators")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"User id", "Username", "Permissions"})

	for _, m := range moderators {
		table.Append([]string{
			m.UserId,
			m.Username,
			strings.Join(m.Permissions, ", "),
		})
	}

	table.Render()
}

func listFlairs(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustModerate(args[0])

	term.StartSpinner("")
	flairs, apiErr := api.Client.ListFlairs(community.Path)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error loading flairs")
	}

	if len(flairs) == 0 {
		fmt.Println("🤷‍♂️ No flairs set for", community.Name)
		return
	}

	for _, f := range flairs {
		fmt.Printf("[%s] %s (%s)\n", f.Id, f.Name, f.Color)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
