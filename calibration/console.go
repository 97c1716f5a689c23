package calibration

import (
	"io"
)

const streamBufferSize = 64

var _ Console = (*StreamConsole)(nil)

// StreamConsole adapts a blocking reader (like a terminal) to the non-blocking Console interface.
// Input is read on a background goroutine into a bounded buffer; bytes arriving while the buffer
// is full are dropped.
type StreamConsole struct {
	io.Writer
	input chan byte
	done  chan struct{}
}

// NewStreamConsole starts reading from r. Output goes to w
func NewStreamConsole(r io.Reader, w io.Writer) *StreamConsole {
	c := &StreamConsole{
		Writer: w,
		input:  make(chan byte, streamBufferSize),
		done:   make(chan struct{}),
	}
	go c.read(r)
	return c
}

func (c *StreamConsole) read(r io.Reader) {
	defer close(c.done)

	buf := make([]byte, streamBufferSize)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case c.input <- b:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

// Buffered implements Console
func (c *StreamConsole) Buffered() int {
	return len(c.input)
}

// ReadByte implements Console. It returns io.EOF when no byte is buffered
func (c *StreamConsole) ReadByte() (byte, error) {
	select {
	case b := <-c.input:
		return b, nil
	default:
		return 0, io.EOF
	}
}

// Done is closed once the underlying reader has returned an error or EOF
func (c *StreamConsole) Done() <-chan struct{} {
	return c.done
}
