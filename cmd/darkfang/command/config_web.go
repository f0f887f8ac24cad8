package command

import (
	"fmt"
	"net"

	"github.com/pixil98/go-errors"
)

// WebConfig enables the browser client's websocket endpoint. An empty addr
// disables the web server entirely.
type WebConfig struct {
	Addr string `json:"addr"`
}

func (w *WebConfig) Validate() error {
	el := errors.NewErrorList()

	if w.Addr != "" {
		if _, _, err := net.SplitHostPort(w.Addr); err != nil {
			el.Add(fmt.Errorf("parsing web addr: %w", err))
		}
	}

	return el.Err()
}
