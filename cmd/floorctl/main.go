package main

import "github.com/BruksfildServices01/restaurant-floor/cmd/floorctl/commands"

func main() {
	commands.Execute()
}
