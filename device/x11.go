package device

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// DetectDisplay returns the default X11 screen size. It opens and closes its
// own connection, so it is only suitable for one-shot startup queries.
func DetectDisplay() (width, height int, err error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return 0, 0, fmt.Errorf("connecting to X server: %w", err)
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	if screen == nil {
		return 0, 0, fmt.Errorf("X server reported no default screen")
	}
	return int(screen.WidthInPixels), int(screen.HeightInPixels), nil
}
