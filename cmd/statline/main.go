package main

import (
	"github.com/statline-game/statline/internal/cli"
)

func main() {
	cli.Execute()
}
