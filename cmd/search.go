package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"onuze-cli/format"
	"onuze-cli/stream"
	"onuze-cli/term"
)

var searchCmd = &cobra.Command{
	Use:     "search [query]",
	Aliases: []string{"s"},
	Short:   "Search posts, communities, and users",
	Args:    cobra.MinimumNArgs(1),
	Run:     search,
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("type", "", "Restrict results: posts | communities | users")
	searchCmd.Flags().String("sort", "relevance", "Sort: relevance | new | top")
}

func search(cmd *cobra.Command, args []string) {
	resolveAuthSilent()

	query := strings.Join(args, " ")
	searchType, _ := cmd.Flags().GetString("type")
	sort, _ := cmd.Flags().GetString("sort")

	term.StartSpinner("")
	s := stream.Search.Query(stream.SearchKey(query, searchType, sort))
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error searching")
	}

	results := s.Items()
	if len(results) == 0 {
		fmt.Println("🤷‍♂️ No results for", query)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Type", "Result", "Details"})

	for _, res := range results {
		switch {
		case res.Post != nil:
			table.Append([]string{
				"post",
				res.Post.Title,
				fmt.Sprintf("▲%d · %s · %s", res.Post.Score, res.Post.Community.Name, format.Time(res.Post.CreatedAt)),
			})
		case res.Community != nil:
			table.Append([]string{
				"community",
				res.Community.Name,
				strconv.Itoa(res.Community.MemberCount) + " members",
			})
		case res.User != nil:
			table.Append([]string{
				"user",
				res.User.Username,
				strconv.Itoa(res.User.Karma) + " karma",
			})
		}
	}

	table.Render()

	fmt.Println()
	term.PrintCmds("", "post", "community", "user")
}
