//go:build linux

package render

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// ScreenProbe queries the X11 server for the screen size. The connection is
// opened lazily and reused across calls.
type ScreenProbe struct {
	mu   sync.Mutex
	conn *xgb.Conn
}

var defaultProbe = &ScreenProbe{}

// WorkArea returns the usable desktop area advertised by the window manager
// through _NET_WORKAREA. It falls back to the full screen size.
func WorkArea() (aspect.Size, error) {
	return defaultProbe.WorkArea()
}

// ScreenSize returns the size of the default screen in pixels, or
// ErrNoDisplay when no X server is reachable.
func (p *ScreenProbe) ScreenSize() (aspect.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	screen, err := p.defaultScreen()
	if err != nil {
		return aspect.Size{}, err
	}
	return aspect.Size{
		Width:  float64(screen.WidthInPixels),
		Height: float64(screen.HeightInPixels),
	}, nil
}

// WorkArea returns the first _NET_WORKAREA rectangle of the default screen.
func (p *ScreenProbe) WorkArea() (aspect.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	screen, err := p.defaultScreen()
	if err != nil {
		return aspect.Size{}, err
	}
	full := aspect.Size{
		Width:  float64(screen.WidthInPixels),
		Height: float64(screen.HeightInPixels),
	}

	const name = "_NET_WORKAREA"
	atom, err := xproto.InternAtom(p.conn, true, uint16(len(name)), name).Reply()
	if err != nil || atom.Atom == xproto.AtomNone {
		return full, nil
	}
	// x, y, width, height as CARDINAL[4] per desktop.
	reply, err := xproto.GetProperty(p.conn, false, screen.Root, atom.Atom,
		xproto.AtomCardinal, 0, 4).Reply()
	if err != nil || reply == nil || len(reply.Value) < 16 {
		return full, nil
	}
	w := xgb.Get32(reply.Value[8:])
	h := xgb.Get32(reply.Value[12:])
	if w == 0 || h == 0 {
		return full, nil
	}
	return aspect.Size{Width: float64(w), Height: float64(h)}, nil
}

func (p *ScreenProbe) defaultScreen() (*xproto.ScreenInfo, error) {
	if p.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoDisplay, err)
		}
		p.conn = conn
	}
	setup := xproto.Setup(p.conn)
	if setup == nil || len(setup.Roots) == 0 {
		return nil, fmt.Errorf("%w: server reported no screens", ErrNoDisplay)
	}
	i := p.conn.DefaultScreen
	if i < 0 || i >= len(setup.Roots) {
		i = 0
	}
	return &setup.Roots[i], nil
}

// Close releases the X11 connection.
func (p *ScreenProbe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
