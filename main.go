package main

import "puzzled-pint-map/cmd"

func main() {
	cmd.Execute()
}
