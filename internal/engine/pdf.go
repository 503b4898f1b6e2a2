package engine

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

const pdfMime = "application/pdf"

var ErrUnsupportedContent = errors.New("unsupported content type")

// Fetcher retrieves the raw bytes behind a source URL.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

type PDFOptions struct {
	CacheSize int
	CacheTTL  time.Duration
}

// PDFEngine opens PDF documents with github.com/ledongthuc/pdf. Fetched
// bytes are kept in a small expiring cache; handles are always fresh.
type PDFEngine struct {
	fetcher Fetcher
	cache   *expirable.LRU[string, []byte]
	worker  *worker
}

func NewPDFEngine(fetcher Fetcher, workerOpts WorkerOptions, opts PDFOptions) *PDFEngine {
	size := opts.CacheSize
	if size <= 0 {
		size = 1
	}
	return &PDFEngine{
		fetcher: fetcher,
		cache:   expirable.NewLRU[string, []byte](size, nil, opts.CacheTTL),
		worker:  newWorker(workerOpts.Src),
	}
}

// PDFFactory adapts NewPDFEngine to the Loader.
func PDFFactory(fetcher Fetcher, opts PDFOptions) Factory {
	return func(ctx context.Context, worker WorkerOptions) (Engine, error) {
		if fetcher == nil {
			return nil, errors.New("no document fetcher configured")
		}
		return NewPDFEngine(fetcher, worker, opts), nil
	}
}

func (e *PDFEngine) Close() error {
	e.worker.stop()
	return nil
}

func (e *PDFEngine) Open(ctx context.Context, src string) (Document, error) {
	data, err := e.load(ctx, src)
	if err != nil {
		return nil, err
	}

	if mt := mimetype.Detect(data); !mt.Is(pdfMime) {
		return nil, errors.Wrapf(ErrUnsupportedContent, "%s", mt.String())
	}

	var reader *pdf.Reader
	err = e.worker.do(ctx, func() error {
		r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return errors.Wrap(err, "open pdf")
		}
		reader = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc := &pdfDocument{
		reader:   reader,
		worker:   e.worker,
		numPages: reader.NumPage(),
	}

	slog.DebugContext(ctx, "document opened", slog.String("src", src), slog.Int("pages", doc.numPages), slog.String("worker", e.worker.src))

	return doc, nil
}

func (e *PDFEngine) load(ctx context.Context, src string) ([]byte, error) {
	if data, ok := e.cache.Get(src); ok {
		return data, nil
	}

	data, err := e.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}

	e.cache.Add(src, data)
	return data, nil
}

type pdfDocument struct {
	reader   *pdf.Reader
	worker   *worker
	numPages int
}

func (d *pdfDocument) NumPages() int {
	return d.numPages
}

func (d *pdfDocument) Page(ctx context.Context, number int) (Page, error) {
	if number < 1 || number > d.numPages {
		return nil, errors.Errorf("page %d out of range [1, %d]", number, d.numPages)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &pdfPage{doc: d, number: number}, nil
}

type pdfPage struct {
	doc    *pdfDocument
	number int
}

// TextContent returns one fragment per text row of the page.
func (p *pdfPage) TextContent(ctx context.Context) (TextContent, error) {
	var items []TextItem
	err := p.doc.worker.do(ctx, func() error {
		page := p.doc.reader.Page(p.number)
		if page.V.IsNull() {
			return nil
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return errors.Wrapf(err, "extract text of page %d", p.number)
		}

		extracted := make([]TextItem, 0, len(rows))
		for _, row := range rows {
			var b strings.Builder
			for _, text := range row.Content {
				b.WriteString(text.S)
			}
			if s := strings.TrimSpace(b.String()); s != "" {
				extracted = append(extracted, TextItem{Str: s})
			}
		}
		items = extracted
		return nil
	})
	if err != nil {
		return TextContent{}, err
	}

	return TextContent{Items: items}, nil
}
