package main

import (
	"flag"
	"log"

	"github.com/nordvik-dev/medlemshub/cmd/app"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Fatal(err)
	}
}
