// Package keys reads single key presses from the terminal without waiting for Enter
package keys

import (
	"io"
	"sync"

	"github.com/eiannone/keyboard"
)

// Reader is an io.ReadCloser of raw key presses. Ctrl+C and Esc end the stream with io.EOF
type Reader struct {
	keys     chan byte
	closeErr error
	once     sync.Once
}

// Open puts the terminal into raw mode and starts reading keys
func Open() (*Reader, error) {
	err := keyboard.Open()
	if err != nil {
		return nil, err
	}

	r := &Reader{keys: make(chan byte, 64)}
	go r.listen(keyboard.GetKey)

	return r, nil
}

func (r *Reader) listen(getKey func() (rune, keyboard.Key, error)) {
	defer close(r.keys)
	for {
		char, key, err := getKey()
		if err != nil {
			return
		}

		b, ok := translate(char, key)
		if !ok {
			return
		}
		if b == 0 {
			continue
		}

		select {
		case r.keys <- b:
		default:
		}
	}
}

// translate maps a key event to the byte sent to the device. ok is false for keys that stop reading
func translate(char rune, key keyboard.Key) (byte, bool) {
	switch key {
	case 0:
		if char > 0x7f {
			return 0, true
		}
		return byte(char), true
	case keyboard.KeyEsc, keyboard.KeyCtrlC, keyboard.KeyCtrlD:
		return 0, false
	case keyboard.KeySpace:
		return ' ', true
	case keyboard.KeyEnter:
		return '\n', true
	default:
		return 0, true
	}
}

// Read blocks for at least one key and then returns any others that are already available
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b, ok := <-r.keys
	if !ok {
		return 0, io.EOF
	}
	p[0] = b

	n := 1
	for n < len(p) {
		select {
		case b, ok := <-r.keys:
			if !ok {
				return n, nil
			}
			p[n] = b
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

// Close restores the terminal
func (r *Reader) Close() error {
	r.once.Do(func() {
		r.closeErr = keyboard.Close()
	})
	return r.closeErr
}
