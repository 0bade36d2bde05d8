package request

import (
	"bufio"
	"bytes"
	"io"
)

// maxHeadSize bounds the request line and each field line.
const maxHeadSize = 64 * 1024

// scanHeadLines yields one head line per token. A line ends at LF; a CR
// right before it is dropped, so bare-LF clients are served too.
func scanHeadLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte{'\r'}), nil
	}
	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte{'\r'}), nil
	}
	return 0, nil, nil
}

func newHeadScanner(reader io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 4096), maxHeadSize)
	scanner.Split(scanHeadLines)

	return scanner
}
