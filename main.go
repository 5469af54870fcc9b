package main

import "github.com/yanxi456/code-stats/cmd"

func main() {
	cmd.Execute()
}
