package main

import "github.com/mcoot/octiline/internal/cli"

func main() {
	cli.Execute()
}
