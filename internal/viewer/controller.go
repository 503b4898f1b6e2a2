// Package viewer holds the interaction state of the document viewing panel:
// page navigation, zoom, fit-width, rotation, the per-page text cache and
// the linear text search over it.
package viewer

import (
	"context"
	"math"
	"sync"

	"github.com/kk-code-lab/docview/internal/engine"
)

const (
	MinScale     = 0.5
	MaxScale     = 3.0
	ScaleStep    = 0.1
	DefaultScale = 1.0

	// Widths are terminal cells.
	BaseWidth        = 80
	ContainerPadding = 2
	MaxRenderWidth   = 160
)

type Presentation int

const (
	PresentationLoading Presentation = iota
	PresentationEngineFailed
	PresentationOpening
	PresentationError
	PresentationReady
)

func (p Presentation) String() string {
	switch p {
	case PresentationLoading:
		return "loading"
	case PresentationEngineFailed:
		return "engine-failed"
	case PresentationOpening:
		return "opening"
	case PresentationError:
		return "error"
	case PresentationReady:
		return "ready"
	}
	return "unknown"
}

// EngineStatus reports the renderer acquisition state.
type EngineStatus interface {
	State() engine.State
}

type ViewState struct {
	Page     int
	Scale    float64
	FitWidth bool
	Rotation int
}

type Options struct {
	InitialPage  int
	InitialScale float64
}

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	View           ViewState
	PageCount      int
	Source         string
	Error          string
	Presentation   Presentation
	ContainerWidth int
	RenderWidth    int
	Searching      bool
}

type Controller struct {
	mu sync.Mutex

	status  EngineStatus
	initial ViewState

	view           ViewState
	pageCount      int
	doc            engine.Document
	cache          *TextCache
	loadErr        string
	source         string
	generation     uint64
	containerWidth int

	search *searchToken
}

// NewController builds a controller. A nil status means the engine is
// always considered ready.
func NewController(status EngineStatus, opts Options) *Controller {
	initial := ViewState{
		Page:     opts.InitialPage,
		Scale:    opts.InitialScale,
		FitWidth: true,
	}
	if initial.Page < 1 {
		initial.Page = 1
	}
	if initial.Scale == 0 {
		initial.Scale = DefaultScale
	}
	initial.Scale = clampScale(initial.Scale)

	return &Controller{
		status:  status,
		initial: initial,
		view:    initial,
	}
}

func (c *Controller) engineReadyLocked() bool {
	return c.status == nil || c.status.State() == engine.StateReady
}

// GoTo moves to page, clamped into [1, pageCount]. Without a loaded document
// it does nothing.
func (c *Controller) GoTo(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToLocked(page)
}

func (c *Controller) goToLocked(page int) {
	if c.pageCount <= 0 {
		return
	}
	if page < 1 {
		page = 1
	}
	if page > c.pageCount {
		page = c.pageCount
	}
	c.view.Page = page
}

func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToLocked(c.view.Page + 1)
}

func (c *Controller) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToLocked(c.view.Page - 1)
}

func (c *Controller) FirstPage() {
	c.GoTo(1)
}

func (c *Controller) LastPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goToLocked(c.pageCount)
}

func (c *Controller) ZoomIn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.engineReadyLocked() {
		return
	}
	c.view.Scale = clampScale(c.view.Scale + ScaleStep)
}

func (c *Controller) ZoomOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.engineReadyLocked() {
		return
	}
	c.view.Scale = clampScale(c.view.Scale - ScaleStep)
}

func (c *Controller) ResetZoom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.engineReadyLocked() {
		return
	}
	c.view.Scale = DefaultScale
}

// ToggleFitWidth switches between container-derived width and the explicit
// scale. The scale itself is left alone.
func (c *Controller) ToggleFitWidth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.engineReadyLocked() {
		return
	}
	c.view.FitWidth = !c.view.FitWidth
}

func (c *Controller) Rotate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.engineReadyLocked() {
		return
	}
	c.view.Rotation = (c.view.Rotation + 90) % 360
}

// SetContainerWidth records the measured width of the viewing area.
func (c *Controller) SetContainerWidth(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width < 0 {
		width = 0
	}
	c.containerWidth = width
}

// SetSource points the viewer at a new document location. The current
// handle, its text cache and any running search are dropped. It returns
// false when src is already the current source.
func (c *Controller) SetSource(src string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if src == c.source && (c.doc != nil || c.loadErr != "") {
		return false
	}
	c.source = src
	c.generation++
	c.cancelSearchLocked()
	c.doc = nil
	c.cache = nil
	c.pageCount = 0
	c.loadErr = ""
	c.view.Page = c.initial.Page
	return true
}

func (c *Controller) OnDocumentLoadSuccess(doc engine.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadSuccessLocked(doc)
}

func (c *Controller) loadSuccessLocked(doc engine.Document) {
	c.cancelSearchLocked()
	c.generation++
	c.doc = doc
	c.cache = NewTextCache(doc)
	c.pageCount = doc.NumPages()
	c.loadErr = ""
	c.goToLocked(c.view.Page)
}

// OnDocumentLoadError records the failure and discards the handle, which
// leaves navigation inert until another document loads.
func (c *Controller) OnDocumentLoadError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadErrorLocked(err)
}

func (c *Controller) loadErrorLocked(err error) {
	c.cancelSearchLocked()
	c.generation++
	c.doc = nil
	c.cache = nil
	c.pageCount = 0
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.loadErr = msg
}

// Load opens the current source with eng and applies the outcome, unless
// the source changed while the document was being opened.
func (c *Controller) Load(ctx context.Context, eng engine.Engine) error {
	c.mu.Lock()
	src, gen := c.source, c.generation
	c.mu.Unlock()

	doc, err := eng.Open(ctx, src)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	if err != nil {
		c.loadErrorLocked(err)
		return err
	}
	c.loadSuccessLocked(doc)
	return nil
}

// GetPageText returns the text of page from the current handle's cache.
func (c *Controller) GetPageText(ctx context.Context, page int) (string, error) {
	c.mu.Lock()
	cache := c.cache
	c.mu.Unlock()
	if cache == nil {
		return "", nil
	}
	return cache.GetPageText(ctx, page)
}

func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageCount
}

func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

func (c *Controller) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

func (c *Controller) Presentation() Presentation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presentationLocked()
}

func (c *Controller) presentationLocked() Presentation {
	if c.status != nil {
		switch c.status.State() {
		case engine.StateFailed:
			return PresentationEngineFailed
		case engine.StateReady:
		default:
			return PresentationLoading
		}
	}
	if c.loadErr != "" {
		return PresentationError
	}
	if c.doc == nil {
		return PresentationOpening
	}
	return PresentationReady
}

// RenderWidth is the width a page is drawn at. In fit-width mode it follows
// the container (0 while unmeasured, meaning unconstrained); otherwise it is
// derived from the explicit scale.
func (c *Controller) RenderWidth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderWidthLocked()
}

func (c *Controller) renderWidthLocked() int {
	if c.view.FitWidth {
		if c.containerWidth <= 0 {
			return 0
		}
		w := c.containerWidth - 2*ContainerPadding
		if w > MaxRenderWidth {
			w = MaxRenderWidth
		}
		if w < 1 {
			w = 1
		}
		return w
	}
	return int(math.Round(BaseWidth * c.view.Scale))
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		View:           c.view,
		PageCount:      c.pageCount,
		Source:         c.source,
		Error:          c.loadErr,
		Presentation:   c.presentationLocked(),
		ContainerWidth: c.containerWidth,
		RenderWidth:    c.renderWidthLocked(),
		Searching:      c.search != nil,
	}
}

// clampScale keeps the scale in range and strips float drift from repeated
// steps.
func clampScale(s float64) float64 {
	s = math.Round(s*1e6) / 1e6
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
