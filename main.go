package main

import "github.com/twiced-technology-gmbh/ttimetracker/cmd"

func main() {
	cmd.Execute()
}
