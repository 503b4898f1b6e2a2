// Package engine wraps the third-party PDF library behind a small
// document/page model and acquires it lazily.
package engine

import "context"

// TextItem is one text fragment of a page, in reading order.
type TextItem struct {
	Str string
}

type TextContent struct {
	Items []TextItem
}

type Page interface {
	TextContent(ctx context.Context) (TextContent, error)
}

// Document is a loaded document. Handles are never mutated; opening a new
// source produces a new handle.
type Document interface {
	NumPages() int
	Page(ctx context.Context, number int) (Page, error)
}

type Engine interface {
	Open(ctx context.Context, src string) (Document, error)
}

// WorkerOptions configures the engine's background worker.
type WorkerOptions struct {
	Src string
}
