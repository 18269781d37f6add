package main

import "github.com/mcoot/wordduel-go/internal/cli"

func main() {
	cli.Execute()
}
