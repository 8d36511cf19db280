package main

import (
	"github.com/dszqbsm/wannasurf/cmd"
)

func main() {
	cmd.Execute()
}
