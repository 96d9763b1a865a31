package main

import "github.com/KaramelBytes/iriscope-cli/cmd"

func main() {
	cmd.Execute()
}
