package listener

import (
	"bytes"
	"io"
)

// lineEndingRW normalizes line endings on a raw terminal transport: inbound
// \r\n and bare \r become \n, outbound \n becomes \r\n. Telnet sends \r\n,
// ssh without a PTY sends bare \r.
type lineEndingRW struct {
	rw io.ReadWriter
}

func newLineEndingRW(rw io.ReadWriter) io.ReadWriter {
	return &lineEndingRW{rw: rw}
}

func (c *lineEndingRW) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		data := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
	}
	return n, err
}

func (c *lineEndingRW) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Report the pre-conversion length so callers see their own byte count.
	return len(p), err
}
