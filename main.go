package main

import "github.com/Flissel/Vibemind-sub001/cmd"

func main() {
	cmd.Execute()
}
