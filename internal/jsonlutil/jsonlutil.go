// Package jsonlutil streams values as JSON Lines from a background encoder.
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
)

// Stream is the producer side of a JSONL encoder. Send values on In, close
// it, then receive exactly once from Done.
type Stream[T any] struct {
	In   chan<- T
	Done <-chan error
}

// Start encodes every value sent on the returned stream as one line on
// out, converting it to its wire form with conv first. After the first
// encode error the remaining values are drained and dropped so producers
// never block. Flush errors that ignore reports as harmless are swallowed.
func Start[T, W any](out io.Writer, bufSize int, conv func(T) W, ignore func(error) bool) Stream[T] {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		enc := json.NewEncoder(bw)
		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = enc.Encode(conv(v))
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && ignore != nil && ignore(err) {
			err = nil
		}
		done <- err
	}()
	return Stream[T]{In: in, Done: done}
}

// WriteAll streams list through Start and waits for the encoder.
func WriteAll[T, W any](out io.Writer, list []T, conv func(T) W, ignore func(error) bool) error {
	s := Start(out, len(list), conv, ignore)
	for _, v := range list {
		s.In <- v
	}
	close(s.In)
	return <-s.Done
}
