package main

import "github.com/MeKo-Tech/beercolor/internal/cmd"

func main() {
	cmd.Execute()
}
