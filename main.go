package main

import (
	"bvhkit/cli"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cli.Start()
}
