package main

import "github.com/pfrederiksen/stationsdata/internal/cli"

func main() {
	cli.Execute()
}
