package main

import (
	"github.com/litfish/litgame-go/internal/cli"
)

func main() {
	cli.Execute()
}
