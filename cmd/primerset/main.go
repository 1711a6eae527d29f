// Command primerset designs minimal multiplex PCR primer sets.
package main

import (
	"primerset/internal/appshell"
	"primerset/internal/cli"
)

func main() {
	appshell.Main(cli.Run)
}
