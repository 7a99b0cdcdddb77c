package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"onuze-cli/shared"
	"onuze-cli/stream"
	"onuze-cli/term"
)

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "List communities",
	Args:  cobra.NoArgs,
	Run:   listCommunities,
}

func init() {
	RootCmd.AddCommand(communitiesCmd)

	communitiesCmd.Flags().Bool("popular", false, "Sort by member count")
	communitiesCmd.Flags().Int("pages", 1, "Number of pages to load")
	communitiesCmd.Flags().String("filter", "", "Fuzzy-filter communities by name")
}

func listCommunities(cmd *cobra.Command, args []string) {
	resolveAuthSilent()

	popular, _ := cmd.Flags().GetBool("popular")
	pages, _ := cmd.Flags().GetInt("pages")

	key := stream.CommunitiesKey()
	if popular {
		key = stream.PopularCommunitiesKey()
	}

	term.StartSpinner("")
	s := stream.Communities.Query(key)
	for i := 1; i < pages && s.HasMore(); i++ {
		s.FetchNextPage()
	}
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading communities")
	}

	communities := s.Items()

	if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
		var matched []shared.Community
		for _, c := range communities {
			if fuzzy.MatchFold(filter, c.Name) {
				matched = append(matched, c)
			}
		}
		communities = matched
	}

	if len(communities) == 0 {
		fmt.Println("🤷‍♂️ No communities found")
		return
	}

	renderCommunitiesTable(communities)

	fmt.Println()
	term.PrintCmds("", "community", "join")
}

func renderCommunitiesTable(communities []shared.Community) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Members", "Description"})

	for _, c := range communities {
		name := c.Name
		if c.IsMember {
			name = color.New(color.Bold, color.FgHiGreen).Sprint(name) + " ✅"
		}
		if c.IsPrivate {
			name += " 🔒"
		}

		table.Append([]string{
			name,
			strconv.Itoa(c.MemberCount),
			c.Description,
		})
	}

	table.Render()
}
