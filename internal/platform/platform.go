// Package platform hands URLs and files to the desktop: opening the
// document source externally, printing through the external viewer,
// downloading it, and copying text to the clipboard.
package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const DefaultDownloadName = "document.pdf"

var (
	ErrNoOpener    = errors.New("no command available to open urls")
	ErrNoClipboard = errors.New("no clipboard command available")
)

// Runner starts a command. Start must not wait for the command to exit.
type Runner func(name string, args []string, stdin string) error

type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

type Desktop struct {
	opener      []string
	clipboard   []string
	downloadDir string
	fetcher     Fetcher
	run         Runner
	write       func(w io.Writer, data []byte) error
}

type Options struct {
	Opener      []string
	Clipboard   []string
	DownloadDir string
	Fetcher     Fetcher
	Runner      Runner
}

// Detect builds a Desktop for the current system.
func Detect(fetcher Fetcher, downloadDir string) *Desktop {
	goos := currentGOOS()
	opener, _ := DetectOpener(goos, os.Getenv, exec.LookPath)
	clipboard, _ := DetectClipboard(goos, exec.LookPath)
	return New(Options{
		Opener:      opener,
		Clipboard:   clipboard,
		DownloadDir: downloadDir,
		Fetcher:     fetcher,
	})
}

func New(opts Options) *Desktop {
	run := opts.Runner
	if run == nil {
		run = startCommand
	}
	dir := opts.DownloadDir
	if dir == "" {
		dir = DefaultDownloadDir()
	}
	return &Desktop{
		opener:      opts.Opener,
		clipboard:   opts.Clipboard,
		downloadDir: dir,
		fetcher:     opts.Fetcher,
		run:         run,
		write:       writeAll,
	}
}

func (d *Desktop) CanOpen() bool {
	return len(d.opener) > 0
}

func (d *Desktop) CanCopy() bool {
	return len(d.clipboard) > 0
}

// Open hands url to the system's default handler.
func (d *Desktop) Open(url string) error {
	if !d.CanOpen() {
		return ErrNoOpener
	}
	args := append(append([]string(nil), d.opener[1:]...), url)
	if err := d.run(d.opener[0], args, ""); err != nil {
		return errors.Wrapf(err, "could not open %s", url)
	}
	return nil
}

// Print delegates to the external viewer, whose print dialog does the work.
func (d *Desktop) Print(url string) error {
	return d.Open(url)
}

func (d *Desktop) Copy(text string) error {
	if !d.CanCopy() {
		return ErrNoClipboard
	}
	if err := d.run(d.clipboard[0], d.clipboard[1:], text); err != nil {
		return errors.Wrap(err, "could not copy to clipboard")
	}
	return nil
}

// Download saves the content behind url into the download directory and
// returns the written path. An empty name means DefaultDownloadName; an
// existing file is never overwritten.
func (d *Desktop) Download(ctx context.Context, url, name string) (string, error) {
	if d.fetcher == nil {
		return "", errors.New("no fetcher configured")
	}

	data, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if err := os.MkdirAll(d.downloadDir, 0o755); err != nil {
		return "", errors.Wrap(err, "could not create download directory")
	}

	name = sanitizeFileName(name)
	if name == "" {
		name = DefaultDownloadName
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(d.downloadDir, candidate)

		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", errors.WithStack(err)
		}

		// A failed write must not leave a truncated document behind.
		if err := d.write(file, data); err != nil {
			_ = file.Close()
			_ = os.Remove(path)
			return "", errors.WithStack(err)
		}
		if err := file.Close(); err != nil {
			_ = os.Remove(path)
			return "", errors.WithStack(err)
		}

		slog.InfoContext(ctx, "document downloaded", slog.String("path", path), slog.Int("bytes", len(data)))
		return path, nil
	}
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// DefaultDownloadDir is ~/Downloads, or the temp dir without a home.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, "Downloads")
}

func startCommand(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
		return cmd.Run()
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
