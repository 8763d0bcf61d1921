package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/lrnselfreliance/wardreport/wardreport/wardreportcli"
)

func main() {
	app := wardreportcli.GetApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
