package rng

import (
	"io"
)

var _ io.Reader = &SourceReader{}

// SourceReader adapts a Source to io.Reader so that synthetic sources can stand in for a noise
// source device file
type SourceReader struct {
	src Source
}

func (r *SourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.src.Next()
	}
	return len(p), nil
}

// NewReader returns an io.Reader that draws one byte per sample from the source
func NewReader(src Source) *SourceReader {
	return &SourceReader{src: src}
}
