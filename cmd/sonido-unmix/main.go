package main

import "github.com/RyanBlaney/sonido-unmix/internal/cli"

func main() {
	cli.Execute()
}
