package main

import "github.com/nfrund/salesdash/cmd/salesdash-cli/cmd"

func main() {
	cmd.Execute()
}
