package wardreportcli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/lrnselfreliance/wardreport/conf"
	"github.com/lrnselfreliance/wardreport/wardreport/client"
	"github.com/lrnselfreliance/wardreport/wardreport/constants"
	"github.com/lrnselfreliance/wardreport/wardreport/mail"
	"github.com/lrnselfreliance/wardreport/wardreport/models"
	"github.com/lrnselfreliance/wardreport/wardreport/report"
	"github.com/lrnselfreliance/wardreport/wardreport/utils"
)

// App Name and usage.  Edit them here to prevent breaking tests
const Name = "wardreport"
const Usage = "Ward membership statistical report CLI"

func GetApp() *cli.App {
	return setUpApp()
}

func setUpApp() *cli.App {
	app := cli.NewApp()
	app.Name = Name
	app.Usage = Usage
	app.Version = constants.Version
	var dataFile, outputFile, emails string
	app.Commands = []cli.Command{
		{
			Name:  "report",
			Usage: "Build the membership report and print it",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "file",
					Usage:       "Read the data bundle from this JSON file instead of LCR",
					Destination: &dataFile,
				},
			},
			Action: func(c *cli.Context) error {
				bundle, err := loadBundle(dataFile)
				if err != nil {
					return err
				}

				r, err := report.New(bundle.MemberList, bundle.Callings, bundle.RecommendStatus)
				if err != nil {
					return err
				}

				return report.Render(app.Writer, r)
			},
		},
		{
			Name:  "email-report",
			Usage: "Build the membership report and email it",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "file",
					Usage:       "Read the data bundle from this JSON file instead of LCR",
					Destination: &dataFile,
				},
				cli.StringFlag{
					Name:        "emails",
					Usage:       "A comma-separated list of emails that will receive the report",
					Destination: &emails,
				},
			},
			Action: func(c *cli.Context) error {
				recipients := splitEmails(emails)
				if len(recipients) == 0 {
					recipients = splitEmails(conf.GetEnv("EMAIL_TOS"))
				}
				if len(recipients) == 0 {
					return errors.New("recipient emails (--emails or EMAIL_TOS) are required")
				}

				bundle, err := loadBundle(dataFile)
				if err != nil {
					return err
				}

				r, err := report.New(bundle.MemberList, bundle.Callings, bundle.RecommendStatus)
				if err != nil {
					return err
				}

				var rendered bytes.Buffer
				if err := report.Render(&rendered, r); err != nil {
					return err
				}

				cfg := mail.Config{
					Server:   conf.GetEnv("SMTP_SERVER"),
					Port:     utils.GetEnvInt("SMTP_SERVER_PORT", 25),
					Username: conf.GetEnv("SMTP_USERNAME"),
					Password: conf.GetEnv("SMTP_PASSWORD"),
					From:     conf.GetEnv("EMAIL_FROM"),
				}
				if err := mail.SendReport(cfg, nil, recipients, rendered.String()); err != nil {
					return err
				}

				fmt.Fprintf(app.Writer, "Report sent to %d recipients\n", len(recipients))
				return nil
			},
		},
		{
			Name:     "download-data",
			Category: "Data import",
			Usage:    "Fetch the member, calling, ministering, and recommend collections from LCR and write them to a JSON file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "output",
					Usage:       "Where to write the data bundle",
					Value:       "data.json",
					Destination: &outputFile,
				},
			},
			Action: func(c *cli.Context) error {
				lcr, err := client.NewLCRClient()
				if err != nil {
					return err
				}

				bundle, err := client.GetBundle(lcr)
				if err != nil {
					return err
				}

				if err := writeBundle(outputFile, bundle); err != nil {
					return err
				}

				fmt.Fprintf(app.Writer, "Data bundle written to %s\n", outputFile)
				return nil
			},
		},
	}
	return app
}

// loadBundle reads the data bundle from a local file when one is given,
// otherwise from LCR directly.
func loadBundle(dataFile string) (*models.DataBundle, error) {
	if dataFile != "" {
		data, err := os.ReadFile(filepath.Clean(dataFile))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read data bundle %s", dataFile)
		}

		var bundle models.DataBundle
		if err := json.Unmarshal(data, &bundle); err != nil {
			return nil, errors.Wrapf(err, "unable to parse data bundle %s", dataFile)
		}
		return &bundle, nil
	}

	lcr, err := client.NewLCRClient()
	if err != nil {
		return nil, err
	}
	return client.GetBundle(lcr)
}

func writeBundle(path string, bundle *models.DataBundle) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0640); err != nil {
		return errors.Wrapf(err, "unable to write data bundle %s", path)
	}
	log.Infof("Wrote data bundle with %d roster entries", len(bundle.MemberList))
	return nil
}

func splitEmails(s string) []string {
	var emails []string
	for _, email := range strings.Split(s, ",") {
		if email = strings.TrimSpace(email); email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}
