package main

import "github.com/mj1618/bridgectl/cmd"

func main() {
	cmd.Execute()
}
