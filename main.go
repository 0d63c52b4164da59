package main

import (
	"os"

	"github.com/thenoetrevino/tasktracker/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
