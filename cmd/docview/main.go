package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"
)

const (
	flagAPI      = "api"
	flagLogLevel = "log-level"
	flagPage     = "page"
	flagScale    = "scale"
)

func main() {
	// Fall back to UTF-8 so non-ASCII titles render on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app := &cli.App{
		Name:  "docview",
		Usage: "browse and read documents from a document API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAPI,
				Aliases: []string{"a"},
				Usage:   "document API base url (overrides DOCVIEW_API_BASE_URL)",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "logging level: debug, info, warn or error (overrides DOCVIEW_LOGGER_LEVEL)",
			},
		},
		Action: func(cCtx *cli.Context) error {
			return runBrowser(cCtx)
		},
		Commands: []*cli.Command{
			openCommand(),
			listCommand(),
		},
	}

	app.ExitErrHandler = func(cCtx *cli.Context, err error) {
		if err == nil {
			return
		}
		slog.ErrorContext(cCtx.Context, fmt.Sprintf("%+v", err))
		fmt.Fprintf(os.Stderr, "docview: %v\n", err)
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
