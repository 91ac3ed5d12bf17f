package main

import "github.com/alamer/timber-engine/cmd"

func main() {
	cmd.Execute()
}
