package main

import "github.com/frahmantamala/worldsell/cmd"

func main() {
	cmd.Execute()
}
