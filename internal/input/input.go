// Package input turns raw terminal bytes into discrete key events.
package input

import (
	"bufio"
	"time"
)

// Key identifies a game control.
type Key int

const (
	KeyNone  Key = iota
	KeyLeft      // Move left (held)
	KeyRight     // Move right (held)
	KeyFire      // Fire one bullet per key-down
	KeyPause     // Toggle pause
	KeyStart     // Start or restart a session
	KeyQuit      // Leave the game
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	case KeyPause:
		return "pause"
	case KeyStart:
		return "start"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// held reports whether the key models a held intent rather than a one-shot press.
func (k Key) held() bool {
	return k == KeyLeft || k == KeyRight
}

// Event is a single key transition.
type Event struct {
	Key  Key
	Down bool
}

// Stream delivers input bytes via a channel and tracks held keys.
// Terminals only report presses, so a held key is released once no repeat
// has arrived for the hold duration.
//
// An escape sequence split across polls is held back until it completes. A
// bare ESC only counts as pause once no follow-up byte arrived within the
// escape wait.
type Stream struct {
	ch       chan byte
	closed   bool
	hold     time.Duration
	lastSeen [KeyQuit + 1]time.Time
	down     [KeyQuit + 1]bool

	escapeWait   time.Duration
	pending      []byte // Unfinished escape sequence
	pendingSince time.Time
}

// EscapeWait is how long a bare ESC waits for the rest of a sequence.
const EscapeWait = 50 * time.Millisecond

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	s := &Stream{
		ch:         make(chan byte, 128),
		hold:       hold,
		escapeWait: EscapeWait,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking) and returns the resulting
// key events in arrival order, followed by synthetic releases of held keys
// whose repeats have stopped. pressed reports whether any byte arrived.
func (s *Stream) Poll(now time.Time) (events []Event, pressed bool) {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.feed(buf, now), len(buf) > 0
}

// feed decodes newly arrived bytes together with any unfinished escape
// sequence left from the previous poll.
func (s *Stream) feed(in []byte, now time.Time) []Event {
	buf := append(s.pending, in...)
	s.pending = nil

	final := s.closed || (len(in) == 0 && now.Sub(s.pendingSince) >= s.escapeWait)
	keys, n := decode(buf, final)
	if n < len(buf) {
		s.pending = append([]byte(nil), buf[n:]...)
		if len(in) > 0 {
			s.pendingSince = now
		}
	}
	return s.apply(keys, now)
}

// apply folds parsed keys into held-key state and emits events.
func (s *Stream) apply(keys []Key, now time.Time) []Event {
	var events []Event
	for _, k := range keys {
		if !k.held() {
			events = append(events, Event{Key: k, Down: true})
			continue
		}
		s.lastSeen[k] = now
		if !s.down[k] {
			s.down[k] = true
			events = append(events, Event{Key: k, Down: true})
		}
	}

	for _, k := range []Key{KeyLeft, KeyRight} {
		if s.down[k] && now.Sub(s.lastSeen[k]) >= s.hold {
			s.down[k] = false
			events = append(events, Event{Key: k, Down: false})
		}
	}
	return events
}

// Reset releases all held keys without emitting events.
func (s *Stream) Reset() {
	s.lastSeen = [KeyQuit + 1]time.Time{}
	s.down = [KeyQuit + 1]bool{}
}

// Parse maps raw terminal bytes to keys, decoding CSI and SS3 arrow
// sequences. Unknown bytes are dropped.
func Parse(buf []byte) []Key {
	keys, _ := decode(buf, true)
	return keys
}

// decode parses buf and returns the keys along with the number of bytes
// consumed. Unless final is set, an unfinished escape sequence at the end of
// buf is left unconsumed.
func decode(buf []byte, final bool) ([]Key, int) {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if !final && partialEscape(buf[i:]) {
				return keys, i
			}
			// ESC [ <code> or ESC O <code>
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				if k, ok := arrowKey(buf[i+2]); ok {
					if k != KeyNone {
						keys = append(keys, k)
					}
					i += 2
					continue
				}
			}
		}

		if k := keyForByte(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys, len(buf)
}

// partialEscape reports whether tail is an escape sequence still missing bytes.
func partialEscape(tail []byte) bool {
	switch len(tail) {
	case 1:
		return true
	case 2:
		return tail[1] == '[' || tail[1] == 'O'
	default:
		return false
	}
}

// arrowKey maps the final byte of an arrow sequence.
func arrowKey(b byte) (Key, bool) {
	switch b {
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	case 'A', 'B': // Up/down arrows are not bound
		return KeyNone, true
	default:
		return KeyNone, false
	}
}

// keyForByte maps a single byte to its key.
func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case ' ':
		return KeyFire
	case '\x1b', 'p', 'P':
		return KeyPause
	case '\n', '\r':
		return KeyStart
	default:
		return KeyNone
	}
}
