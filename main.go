package main

import "tailwindcli/internal/cli"

func main() {
	cli.Execute()
}
