package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/karthikurao/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
