package main

import "github.com/pageza/recipe-finder/backend/internal/cli"

func main() {
	cli.Execute()
}
