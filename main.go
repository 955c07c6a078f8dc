package main

import (
	"retypegen/cli"
)

func main() {
	cli.Start()
}
