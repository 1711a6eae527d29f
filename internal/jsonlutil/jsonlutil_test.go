package jsonlutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type wire struct {
	N int `json:"n"`
}

func TestWriteAllOneLinePerValue(t *testing.T) {
	defer goleak.VerifyNone(t)
	var buf bytes.Buffer
	err := WriteAll(&buf, []int{1, 2, 3}, func(n int) wire { return wire{N: n} }, nil)
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n{\"n\":3}\n", buf.String())
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestStartDrainsAfterError(t *testing.T) {
	defer goleak.VerifyNone(t)
	boom := errors.New("boom")
	s := Start(failWriter{boom}, 1, func(n int) wire { return wire{N: n} }, nil)
	for i := 0; i < 100; i++ {
		s.In <- i
	}
	close(s.In)
	assert.ErrorIs(t, <-s.Done, boom)
}

func TestStartIgnoredError(t *testing.T) {
	boom := errors.New("closed pipe")
	err := WriteAll(failWriter{boom}, []int{1}, func(n int) wire { return wire{N: n} },
		func(err error) bool { return errors.Is(err, boom) })
	assert.NoError(t, err)
}
