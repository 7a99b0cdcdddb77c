package term

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// CmdDesc maps a command to its alias and description for help output.
var CmdDesc = map[string][]string{
	"sign-in":           {"", "sign in to your account"},
	"sign-out":          {"", "sign out and clear stored credentials"},
	"feed":              {"f", "browse your home feed"},
	"popular":           {"", "browse the popular feed"},
	"new":               {"", "browse the newest posts"},
	"all":               {"", "browse all posts by top score"},
	"post":              {"p", "view a post and its comment thread"},
	"submit":            {"", "submit a new post to a community"},
	"comment":           {"c", "reply to a post or comment"},
	"upvote":            {"u", "upvote a post or comment"},
	"downvote":          {"d", "downvote a post or comment"},
	"communities":       {"", "list communities"},
	"community":         {"", "view a community"},
	"join":              {"", "join a community"},
	"leave":             {"", "leave a community"},
	"search":            {"s", "search posts, communities, and users"},
	"user":              {"", "view a user profile"},
	"notifications":     {"n", "list notifications, or watch for new ones"},
	"mod":               {"", "moderator actions for a community"},
	"resend-activation": {"", "resend the account activation email"},
	"reset-password":    {"", "confirm a password reset"},
	"upload":            {"", "upload an image"},
	"upgrade":           {"", "upgrade onuze to the latest version"},
	"version":           {"", "show version"},
}

func PrintCmds(prefix string, cmds ...string) {
	for _, cmd := range cmds {
		printCmd(prefix, cmd)
	}
}

func printCmd(prefix, cmd string) {
	config, ok := CmdDesc[cmd]
	if !ok {
		return
	}

	alias := config[0]
	desc := config[1]
	if alias != "" {
		if strings.Contains(cmd, alias) {
			cmd = strings.Replace(cmd, alias, fmt.Sprintf("(%s)", alias), 1)
		} else {
			cmd = fmt.Sprintf("%s (%s)", cmd, alias)
		}
	}

	styled := color.New(color.Bold, ColorHiCyan).Sprintf("onuze %s", cmd)
	fmt.Printf("%s%s 👉 %s\n", prefix, styled, desc)
}

func PrintCustomCmd(prefix, cmd, alias, desc string) {
	if alias != "" {
		if strings.Contains(cmd, alias) {
			cmd = strings.Replace(cmd, alias, fmt.Sprintf("(%s)", alias), 1)
		} else {
			cmd = fmt.Sprintf("%s (%s)", cmd, alias)
		}
	}

	styled := color.New(color.Bold, ColorHiCyan).Sprintf("onuze %s", cmd)
	fmt.Printf("%s%s 👉 %s\n", prefix, styled, desc)
}
