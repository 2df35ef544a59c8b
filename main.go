package main

import "github.com/bitzorro/relstring/internal/cmd"

func main() {
	cmd.Execute()
}
