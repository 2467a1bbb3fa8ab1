package cube

import (
	"bufio"
	"io"
)

// Consumer is the output sink the extractor delivers formatted hypotheses
// to. Finish is invoked exactly once on every exit path from Extract,
// whether extraction ran to completion, stopped early (fewer than N
// derivations existed), or unwound after a Deliver error.
type Consumer interface {
	Deliver(line string) error
	Finish()
}

// WriterConsumer writes one hypothesis per line to an underlying io.Writer,
// flushing on Finish. This is the default consumer for one-shot CLI use.
type WriterConsumer struct {
	w *bufio.Writer
}

// NewWriterConsumer wraps w in a buffered line writer.
func NewWriterConsumer(w io.Writer) *WriterConsumer {
	return &WriterConsumer{w: bufio.NewWriter(w)}
}

func (c *WriterConsumer) Deliver(line string) error {
	if _, err := c.w.WriteString(line); err != nil {
		return err
	}
	return c.w.WriteByte('\n')
}

func (c *WriterConsumer) Finish() {
	_ = c.w.Flush()
}

// SliceConsumer collects delivered lines in memory, for tests.
type SliceConsumer struct {
	Lines    []string
	Finished bool
}

func (c *SliceConsumer) Deliver(line string) error {
	c.Lines = append(c.Lines, line)
	return nil
}

func (c *SliceConsumer) Finish() {
	c.Finished = true
}
