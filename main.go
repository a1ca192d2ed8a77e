package main

import "github.com/KaramelBytes/outlier-cli/cmd"

func main() {
	cmd.Execute()
}
