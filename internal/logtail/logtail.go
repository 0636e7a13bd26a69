package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	r := newRing(maxLines)
	if err := scanLines(file, r.push); err != nil {
		return nil, err
	}
	return r.lines(), nil
}

func scanLines(src io.Reader, emit func(string)) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		emit(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	return nil
}

// ring keeps the last size lines; size <= 0 keeps everything.
type ring struct {
	size  int
	buf   []string
	start int
}

func newRing(size int) *ring {
	return &ring{size: size}
}

func (r *ring) push(line string) {
	if r.size <= 0 || len(r.buf) < r.size {
		r.buf = append(r.buf, line)
		return
	}
	r.buf[r.start] = line
	r.start = (r.start + 1) % r.size
}

func (r *ring) lines() []string {
	if len(r.buf) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.buf))
	out = append(out, r.buf[r.start:]...)
	return append(out, r.buf[:r.start]...)
}

// Follower keeps the tail of a growing file, reading only what was appended
// since the previous Poll. Truncation or rotation restarts from the top.
type Follower struct {
	path    string
	offset  int64
	partial string
	window  *ring
}

// NewFollower follows path keeping at most maxLines.
func NewFollower(path string, maxLines int) *Follower {
	return &Follower{path: path, window: newRing(maxLines)}
}

// Path returns the followed file.
func (f *Follower) Path() string {
	return f.path
}

// Poll reads new complete lines and returns the current window.
func (f *Follower) Poll() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f.window.lines(), nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < f.offset {
		f.offset = 0
		f.partial = ""
		f.window = newRing(f.window.size)
	}
	if info.Size() == f.offset {
		return f.window.lines(), nil
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}

	chunk, err := io.ReadAll(io.LimitReader(file, info.Size()-f.offset))
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	f.offset += int64(len(chunk))

	text := f.partial + string(chunk)
	complete := strings.LastIndexByte(text, '\n')
	if complete < 0 {
		f.partial = text
		return f.window.lines(), nil
	}
	f.partial = text[complete+1:]
	if err := scanLines(strings.NewReader(text[:complete+1]), f.window.push); err != nil {
		return nil, err
	}
	return f.window.lines(), nil
}
