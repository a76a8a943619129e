package main

import "github.com/theirongolddev/resolution/cmd"

func main() {
	cmd.Execute()
}
