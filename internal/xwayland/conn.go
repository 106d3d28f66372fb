package xwayland

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Conn owns the live X11 connection Flick's XWM plays window manager
// on, dispatching substructure-redirect events into a Manager.
type Conn struct {
	xconn *xgb.Conn
	root  xproto.Window
	mgr   *Manager
}

// Dial connects to the Xwayland display and selects substructure
// redirection on the root window, the same role an ordinary window
// manager takes.
func Dial(mgr *Manager) (*Conn, error) {
	xconn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to xwayland display: %w", err)
	}

	setup := xproto.Setup(xconn)
	root := setup.DefaultScreen(xconn).Root

	err = xproto.ChangeWindowAttributesChecked(xconn, root, xproto.CwEventMask, []uint32{
		uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify),
	}).Check()
	if err != nil {
		xconn.Close()
		return nil, fmt.Errorf("select substructure redirect on root: %w", err)
	}

	return &Conn{xconn: xconn, root: root, mgr: mgr}, nil
}

// Close releases the X11 connection.
func (c *Conn) Close() { c.xconn.Close() }

// Serve blocks, dispatching window-manager events into the Conn's
// Manager until the connection errors out.
func (c *Conn) Serve() error {
	for {
		ev, err := c.xconn.WaitForEvent()
		if err != nil {
			return fmt.Errorf("xwayland event loop: %w", err)
		}
		if ev == nil {
			continue
		}
		c.dispatch(ev)
	}
}

func (c *Conn) dispatch(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.CreateNotifyEvent:
		c.mgr.OnCreateNotify(uint32(e.Window))

	case xproto.ConfigureRequestEvent:
		w, h, ok := c.mgr.OnConfigureRequest(uint32(e.Window), int(e.Width), int(e.Height))
		if ok {
			c.applyConfigure(e.Window, w, h)
		}

	case xproto.MapRequestEvent:
		if c.mgr.OnMapRequest(uint32(e.Window)) {
			xproto.MapWindow(c.xconn, e.Window)
		}

	case xproto.DestroyNotifyEvent:
		c.mgr.OnDestroyNotify(uint32(e.Window))
	}
}

func (c *Conn) applyConfigure(win xproto.Window, w, h int) {
	xproto.ConfigureWindow(c.xconn, win, xproto.ConfigWindowWidth|xproto.ConfigWindowHeight, []uint32{
		uint32(w), uint32(h),
	})
}
