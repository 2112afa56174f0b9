package main

import (
	"os"

	"github.com/ChurchAdmin/ChurchAdmin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
