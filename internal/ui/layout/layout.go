// Package layout splits the screen into panels. It is shared by the state
// reducer, which measures the viewer, and the renderer, which draws it.
package layout

const (
	minViewerWidth   = 32
	minDrawerWidth   = 28
	drawerWidthCap   = 44
	drawerWidthRatio = 0.35
	separatorWidth   = 1

	// HeaderRows and FooterRows frame every screen.
	HeaderRows = 1
	FooterRows = 1
)

type Detail struct {
	ViewerX     int
	ViewerWidth int
	DrawerX     int
	DrawerWidth int
	BodyTop     int
	BodyHeight  int
	ShowDrawer  bool
}

// DetailMetrics lays out the detail screen. The drawer is dropped when the
// terminal is too narrow to keep a usable viewer next to it.
func DetailMetrics(width, height int, drawerOpen bool) Detail {
	m := Detail{
		ViewerWidth: width,
		BodyTop:     HeaderRows,
		BodyHeight:  height - HeaderRows - FooterRows,
	}
	if m.BodyHeight < 0 {
		m.BodyHeight = 0
	}
	if m.ViewerWidth < 0 {
		m.ViewerWidth = 0
	}
	if !drawerOpen {
		return m
	}

	drawer := int(float64(width)*drawerWidthRatio + 0.5)
	if drawer < minDrawerWidth {
		drawer = minDrawerWidth
	}
	if drawer > drawerWidthCap {
		drawer = drawerWidthCap
	}
	if width-drawer-separatorWidth < minViewerWidth {
		return m
	}

	m.ShowDrawer = true
	m.DrawerWidth = drawer
	m.ViewerWidth = width - drawer - separatorWidth
	m.DrawerX = m.ViewerWidth + separatorWidth
	return m
}

// ViewerWidth is the width of the viewer panel in cells.
func ViewerWidth(width int, drawerOpen bool) int {
	return DetailMetrics(width, 0, drawerOpen).ViewerWidth
}
