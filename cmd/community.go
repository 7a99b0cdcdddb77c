package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"onuze-cli/actions"
	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/format"
	"onuze-cli/shared"
	"onuze-cli/term"
)

var communityCmd = &cobra.Command{
	Use:   "community [community]",
	Short: "View a community",
	Args:  cobra.ExactArgs(1),
	Run:   showCommunity,
}

var createCommunityCmd = &cobra.Command{
	Use:   "create-community [name]",
	Short: "Create a new community",
	Args:  cobra.ExactArgs(1),
	Run:   createCommunity,
}

var joinCmd = &cobra.Command{
	Use:   "join [community]",
	Short: "Join a community",
	Args:  cobra.ExactArgs(1),
	Run:   joinCommunity,
}

var leaveCmd = &cobra.Command{
	Use:   "leave [community]",
	Short: "Leave a community",
	Args:  cobra.ExactArgs(1),
	Run:   leaveCommunity,
}

func init() {
	RootCmd.AddCommand(communityCmd)
	RootCmd.AddCommand(createCommunityCmd)
	RootCmd.AddCommand(joinCmd)
	RootCmd.AddCommand(leaveCmd)

	createCommunityCmd.Flags().String("description", "", "Community description")
	createCommunityCmd.Flags().Bool("private", false, "Make the community private")
	createCommunityCmd.Flags().Bool("restricted", false, "Only approved members can post")
}

func showCommunity(cmd *cobra.Command, args []string) {
	resolveAuthSilent()

	community := mustGetCommunity(args[0])

	name := color.New(color.Bold, term.ColorHiCyan).Sprint(community.Name)
	if community.Verified {
		name += " ✓"
	}
	if community.IsPrivate {
		name += " 🔒"
	}

	fmt.Println(name)
	fmt.Printf("%d members · created %s\n", community.MemberCount, format.Time(community.CreatedAt))
	if community.Description != "" {
		fmt.Println()
		fmt.Println(community.Description)
	}

	term.StartSpinner("")
	rules, rulesErr := api.Client.ListRules(community.Path)
	term.StopSpinner()

	if rulesErr == nil && len(rules) > 0 {
		fmt.Println()
		color.New(color.Bold).Println("Rules")
		for _, rule := range rules {
			fmt.Printf("%d. %s\n", rule.Order, rule.Title)
			if rule.Description != "" {
				fmt.Println("   " + rule.Description)
			}
		}
	}

	if len(community.Moderators) > 0 {
		fmt.Println()
		color.New(color.Bold).Println("Moderators")
		var names []string
		for _, mod := range community.Moderators {
			names = append(names, mod.Username)
		}
		fmt.Println(strings.Join(names, ", "))
	}

	fmt.Println()
	if community.IsMember {
		term.PrintCmds("", "leave", "submit")
	} else {
		term.PrintCmds("", "join")
	}
}

func createCommunity(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	description, _ := cmd.Flags().GetString("description")
	private, _ := cmd.Flags().GetBool("private")
	restricted, _ := cmd.Flags().GetBool("restricted")

	term.StartSpinner("")
	community, apiErr := api.Client.CreateCommunity(shared.CreateCommunityRequest{
		Name:         args[0],
		Description:  description,
		IsPrivate:    private,
		IsRestricted: restricted,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error creating community")
	}

	fmt.Println("✅ Created", color.New(color.Bold, term.ColorHiGreen).Sprint(community.Name))
}

func joinCommunity(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustGetCommunity(args[0])
	if community.IsMember {
		fmt.Println("You're already a member of", community.Name)
		return
	}

	term.StartSpinner("")
	apiErr := actions.JoinCommunity(community)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error joining community")
	}

	fmt.Printf("✅ Joined %s (%s members)\n",
		color.New(color.Bold, term.ColorHiGreen).Sprint(community.Name),
		strconv.Itoa(community.MemberCount))
}

func leaveCommunity(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	community := mustGetCommunity(args[0])
	if !community.IsMember {
		fmt.Println("You're not a member of", community.Name)
		return
	}

	term.StartSpinner("")
	apiErr := actions.LeaveCommunity(community)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiError(apiErr, "Error leaving community")
	}

	fmt.Println("✅ Left", community.Name)
}

// renderMembersTable lists community members.
func renderMembersTable(members []shared.User) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Username", "Karma", "Joined"})

	for _, m := range members {
		table.Append([]string{
			m.Username,
			strconv.Itoa(m.Karma),
			format.Time(m.CreatedAt),
		})
	}

	table.Render()
}
