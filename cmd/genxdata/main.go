package main

import (
	"github.com/genxdata/genxdata/internal/generator/app"
)

var version string

func main() {
	application := app.NewApp(version)
	application.Run()
}
