package main

import (
	"poebuilds/cmd/poebuilds/commands"
	"poebuilds/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
