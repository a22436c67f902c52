package main

import (
	"os"

	"github.com/couchcryptid/quake-dashboard/internal/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
