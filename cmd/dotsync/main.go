package main

import "github.com/arthur-debert/dotsync/internal/cli"

func main() {
	cli.Execute()
}
