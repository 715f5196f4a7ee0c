package main

import "github.com/mcoot/coup-go/internal/cli"

func main() {
	cli.Execute()
}
