package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kk-code-lab/docview/internal/api"
	appkg "github.com/kk-code-lab/docview/internal/app"
	"github.com/kk-code-lab/docview/internal/config"
	"github.com/kk-code-lab/docview/internal/engine"
	"github.com/kk-code-lab/docview/internal/logging"
	"github.com/kk-code-lab/docview/internal/platform"
	"github.com/kk-code-lab/docview/internal/prefs"
	"github.com/kk-code-lab/docview/internal/textutil"
	"github.com/kk-code-lab/docview/internal/viewer"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// environment is what every command needs: configuration, logging and the
// API client.
type environment struct {
	conf   *config.Config
	client *api.Client
	logs   io.Closer
}

func (e *environment) Close() error {
	if e.logs == nil {
		return nil
	}
	return e.logs.Close()
}

// setup builds the environment. The terminal UI owns stdout/stderr, so it
// logs to a file; plain commands log to stderr.
func setup(cCtx *cli.Context, logToFile bool) (*environment, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}
	if raw := cCtx.String(flagAPI); raw != "" {
		conf.API.BaseURL = raw
	}

	level := conf.Logger.Level
	if cCtx.IsSet(flagLogLevel) {
		level = logging.ParseLevel(cCtx.String(flagLogLevel))
	}

	env := &environment{conf: conf}
	if logToFile {
		closer, err := logging.Setup(conf.Logger.File, level)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		env.logs = closer
	} else {
		slog.SetDefault(logging.New(os.Stderr, level))
	}

	baseURL, err := conf.BaseURL()
	if err != nil {
		_ = env.Close()
		return nil, errors.WithStack(err)
	}

	env.client = api.New(
		api.WithBaseURL(baseURL),
		api.WithTimeout(conf.API.Timeout),
	)

	slog.DebugContext(cCtx.Context, "using configuration", slog.Any("config", conf))

	return env, nil
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a document directly in the viewer",
		ArgsUsage: "<document-id>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  flagPage,
				Usage: "page to start on",
			},
			&cli.Float64Flag{
				Name:  flagScale,
				Usage: "initial zoom factor, between 0.5 and 3.0",
			},
		},
		Action: func(cCtx *cli.Context) error {
			id := strings.TrimSpace(cCtx.Args().First())
			if id == "" {
				return errors.New("a document id is required")
			}
			env, err := setup(cCtx, true)
			if err != nil {
				return errors.WithStack(err)
			}
			defer env.Close()

			doc, err := env.client.GetDocument(cCtx.Context, id)
			if err != nil {
				if errors.Is(err, api.ErrNotFound) {
					return errors.Errorf("document %q not found", id)
				}
				return errors.Wrapf(err, "could not load document %q", id)
			}

			return runViewer(env, doc, cCtx.Int(flagPage), cCtx.Float64(flagScale))
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the document list",
		Action: func(cCtx *cli.Context) error {
			env, err := setup(cCtx, false)
			if err != nil {
				return errors.WithStack(err)
			}
			defer env.Close()

			docs, err := env.client.ListDocuments(cCtx.Context)
			if err != nil {
				return errors.Wrap(err, "could not list documents")
			}

			writeDocumentTable(os.Stdout, docs, time.Now())
			return nil
		},
	}
}

func runBrowser(cCtx *cli.Context) error {
	env, err := setup(cCtx, true)
	if err != nil {
		return errors.WithStack(err)
	}
	defer env.Close()

	return runViewer(env, nil, 0, 0)
}

func runViewer(env *environment, doc *api.Document, page int, scale float64) error {
	conf := env.conf

	loader := engine.NewLoader(
		engine.PDFFactory(env.client, engine.PDFOptions{
			CacheSize: conf.Cache.Size,
			CacheTTL:  conf.Cache.TTL,
		}),
		env.client,
		conf.Worker.Preferred,
		conf.Worker.Fallback,
	)

	downloadDir := conf.DownloadDir
	if downloadDir == "" {
		downloadDir = platform.DefaultDownloadDir()
	}

	opts := viewer.Options{
		InitialPage:  conf.Viewer.InitialPage,
		InitialScale: conf.Viewer.InitialScale,
	}
	if page > 0 {
		opts.InitialPage = page
	}
	if scale > 0 {
		opts.InitialScale = scale
	}

	application, err := appkg.NewApplication(appkg.Options{
		Documents: env.client,
		Loader:    loader,
		Desktop:   platform.Detect(env.client, downloadDir),
		Prefs:     prefs.NewFile(),
		Viewer:    opts,
		Open:      doc,
	})
	if err != nil {
		return errors.Wrap(err, "could not initialize terminal")
	}
	defer func() {
		_ = application.Close()
	}()

	application.Run()
	return nil
}

const (
	listTitleWidth = 40
	listTypeWidth  = 18
	listSizeWidth  = 10
)

func writeDocumentTable(w io.Writer, docs []api.Document, now time.Time) {
	fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
		textutil.PadRight("ID", 20),
		textutil.PadRight("TITLE", listTitleWidth),
		textutil.PadRight("TYPE", listTypeWidth),
		textutil.PadRight("SIZE", listSizeWidth),
		"UPDATED",
	)
	for _, doc := range docs {
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			textutil.PadRight(doc.ID, 20),
			textutil.PadRight(textutil.SanitizeTerminalText(doc.Title), listTitleWidth),
			textutil.PadRight(doc.Mime, listTypeWidth),
			textutil.PadRight(humanize.IBytes(uint64(max(doc.Size, 0))), listSizeWidth),
			updatedLabel(doc.UpdatedAt, now),
		)
	}
}

func updatedLabel(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
