package main

import "nowgrab/cmd"

func main() {
	cmd.Execute()
}
