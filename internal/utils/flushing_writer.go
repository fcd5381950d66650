package utils

import (
	"io"
	"sync"
)

// flushableWriter is the optional interface detected on wrapped writers.
type flushableWriter interface {
	Flush() error
}

// FlushingWriter forwards writes to the wrapped writer and flushes it after
// each write when the writer supports flushing, keeping confirmation output
// visible immediately even when the destination buffers.
type FlushingWriter struct {
	destination io.Writer
	writeMutex  sync.Mutex
}

// NewFlushingWriter wraps writer; wrapping an existing FlushingWriter returns it unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if existingWrapper, isWrapped := writer.(*FlushingWriter); isWrapped {
		return existingWrapper
	}
	return &FlushingWriter{destination: writer}
}

// Write forwards data to the wrapped writer and flushes when supported.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	if writer == nil || writer.destination == nil {
		return 0, nil
	}

	writer.writeMutex.Lock()
	defer writer.writeMutex.Unlock()

	writtenBytes, writeError := writer.destination.Write(data)
	if writeError != nil {
		return writtenBytes, writeError
	}

	if flushTarget, canFlush := writer.destination.(flushableWriter); canFlush {
		if flushError := flushTarget.Flush(); flushError != nil {
			return writtenBytes, flushError
		}
	}

	return writtenBytes, nil
}
