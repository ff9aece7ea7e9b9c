package main

import "github.com/recruitdesk/recruitdesk/internal/cli"

func main() {
	cli.Execute()
}
