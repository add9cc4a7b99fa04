package main

import (
	"os"

	"github.com/satishbabariya/sqlcomposer/cli/commands"
	"github.com/satishbabariya/sqlcomposer/cli/internal/ui"
	_ "github.com/satishbabariya/sqlcomposer/internal/database/mysql"
	_ "github.com/satishbabariya/sqlcomposer/internal/database/postgres"
	_ "github.com/satishbabariya/sqlcomposer/internal/database/sqlite"
)

func main() {
	if err := commands.Execute(); err != nil {
		ui.PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
