package main

import (
	"os"

	"github.com/quillpress/quillpress/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
