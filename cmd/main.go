package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/cmd/importer"
	"tradejournal/src/database"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Tradejournal CMD"
	app.Usage = "The tradejournal command line interface"

	app.Commands = []cli.Command{
		importCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var importCMD = cli.Command{
	Name:      "import",
	Usage:     "import a broker performance CSV into the journal",
	Action:    importAction,
	ArgsUsage: "",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "file",
			Usage: "path to the performance report CSV",
		},
	},
	Description: `Reconcile a broker performance report into trades and persist them`,
}

func importAction(c *cli.Context) error {
	logrus.Info("Starting import CMD")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	imp := &importer.Importer{
		Log: logrus.WithField("cmd", "import"),
	}

	if err := imp.Start(c.String("file")); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}
