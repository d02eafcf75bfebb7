package main

import "inventory/internal/cli"

func main() {
	cli.Execute()
}
