package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"onuze-cli/auth"
	"onuze-cli/format"
	"onuze-cli/notify"
	"onuze-cli/shared"
	"onuze-cli/stream"
	"onuze-cli/term"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"n"},
	Short:   "List notifications, or watch for new ones",
	Args:    cobra.NoArgs,
	Run:     notifications,
}

func init() {
	RootCmd.AddCommand(notificationsCmd)

	notificationsCmd.Flags().Bool("watch", false, "Stay connected and print notifications as they arrive")
	notificationsCmd.Flags().String("mark-read", "", "Mark one notification read by id")
	notificationsCmd.Flags().Bool("mark-all-read", false, "Mark every notification read")
}

func notifications(cmd *cobra.Command, args []string) {
	auth.MustResolveAuth()

	if id, _ := cmd.Flags().GetString("mark-read"); id != "" {
		if apiErr := notify.MarkRead(id); apiErr != nil {
			term.OutputApiError(apiErr, "Error marking notification read")
		}
		fmt.Println("✅ Marked read")
		return
	}

	if all, _ := cmd.Flags().GetBool("mark-all-read"); all {
		if apiErr := notify.MarkAllRead(); apiErr != nil {
			term.OutputApiError(apiErr, "Error marking notifications read")
		}
		fmt.Println("✅ All notifications marked read")
		return
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		watchNotifications()
		return
	}

	term.StartSpinner("")
	notify.RefreshUnread()
	s := stream.Notifications.Query(stream.NotificationsKey())
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		term.OutputApiError(apiErr, "Error loading notifications")
	}

	items := s.Items()
	if len(items) == 0 {
		fmt.Println("🤷‍♂️ No notifications")
		return
	}

	fmt.Printf("🔔 %d unread\n\n", notify.UnreadCount())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"", "Id", "Message", "When"})

	for _, n := range items {
		read := "●"
		if n.IsRead {
			read = ""
		}
		table.Append([]string{
			color.New(term.ColorHiYellow).Sprint(read),
			n.Id,
			n.Message,
			format.Time(n.CreatedAt),
		})
	}

	table.Render()
}

// watchNotifications keeps the push channel open and prints arriving
// notifications until interrupted.
func watchNotifications() {
	unsubscribe := notify.Default.AddListener(func(msg shared.WsMessage) {
		switch msg.Type {
		case shared.WsMessageConnectionStatus:
			if msg.Status == shared.WsStatusConnected {
				fmt.Println(color.New(term.ColorHiGreen).Sprint("● connected"))
			} else {
				fmt.Println(color.New(term.ColorHiRed).Sprint("○ disconnected, retrying..."))
			}
		case shared.WsMessageNewNotification:
			if msg.Notification != nil {
				fmt.Printf("🔔 %s · %s\n", msg.Notification.Message, format.Time(msg.Notification.CreatedAt))
			}
		}
	})
	defer unsubscribe()

	notify.Default.Initialize()

	fmt.Println("Watching for notifications. Press ctrl+c to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	notify.Default.Disconnect()
}
