package main

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"onuze-cli/api"
	"onuze-cli/auth"
	"onuze-cli/cmd"
	"onuze-cli/fs"
	"onuze-cli/notify"
)

func init() {
	// inter-package dependency injections to avoid circular imports
	auth.SetApiClient(api.Client)
	notify.SetApiClient(api.Client)
	notify.SetEndpoint(api.WsBaseUrl)

	// set up a rotating file logger
	log.SetOutput(&lumberjack.Logger{
		Filename:   fs.HomeLogPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}

func main() {
	cmd.CheckForUpgrade()
	cmd.Execute()
}
