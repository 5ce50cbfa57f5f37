package hotkeys

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/winpos/internal/x11"
)

// Handler manages global keyboard shortcuts on the root window. It owns the
// connection it was created with.
type Handler struct {
	conn      *x11.Connection
	xu        *xgbutil.XUtil
	root      xproto.Window
	closeOnce sync.Once
}

var ignoreModsOnce sync.Once

// NewHandler prepares keyboard grabs on conn.
func NewHandler(conn *x11.Connection) *Handler {
	keybind.Initialize(conn.XUtil)

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	return &Handler{
		conn: conn,
		xu:   conn.XUtil,
		root: conn.Root,
	}
}

// RegisterFunc grabs keySequence (e.g. "Mod4-Control-Left") and runs
// callback on every press.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", keySequence, err)
	}
	return nil
}

// Run processes X events until ctx is cancelled. Callbacks run on the
// event loop, one at a time. Cancellation closes the connection, since the
// event loop only notices a quit request after the next event.
func (h *Handler) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			xevent.Quit(h.xu)
			h.Close()
		case <-done:
		}
	}()

	xevent.Main(h.xu)
	return ctx.Err()
}

// Close releases the key grabs and the connection. It is safe to call more
// than once.
func (h *Handler) Close() {
	h.closeOnce.Do(func() {
		h.conn.Close()
	})
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	xevent.IgnoreMods = ignoreMasks(
		uint16(xproto.ModMaskLock),
		modMaskForKeysym(xu, "Num_Lock"),
		modMaskForKeysym(xu, "Scroll_Lock"),
	)
}

// ignoreMasks returns every combination of the lock modifiers, so a binding
// still fires while CapsLock, NumLock or ScrollLock is on.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	slices.Sort(ignore)
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
