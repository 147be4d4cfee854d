package main

import (
	"github.com/st4ngkudut/ST4Wrt-bot/cmd"
)

// st4wrt-setup provisions the ST4Wrt Telegram bot on an OpenWrt
// router. It installs the opkg packages and Python libraries the bot
// needs, interactively collects the bot token, admin ID, and optional
// guest-WiFi interface, writes the bot's configuration files, and
// registers a procd service so the bot starts at boot and respawns on
// failure.
//
// Every step converges to the same end state no matter how often it
// runs, so the tool doubles as the repair path: after any failure, fix
// the environment and run `st4wrt-setup install` again.
func main() {
	cmd.Execute()
}
