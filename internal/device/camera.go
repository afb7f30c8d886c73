package device

import (
	"context"
	"errors"
	"io"
	"os"

	vaultgate "github.com/MrEthical07/vaultgate"
)

// FileCamera opens a file on every capture, standing in for camera hardware.
// The file content is the frame.
type FileCamera struct {
	Path string
}

func (c FileCamera) Open(ctx context.Context) (vaultgate.CameraStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Path == "" {
		return nil, errors.New("camera path not configured")
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, err
	}
	return &fileStream{file: f}, nil
}

type fileStream struct {
	file *os.File
}

func (s *fileStream) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.ReadAll(s.file)
}

func (s *fileStream) Close() error {
	return s.file.Close()
}

// StaticFrameCamera returns the same in-memory frame on every capture. The
// demo falls back to it when the host has no readable camera node.
type StaticFrameCamera struct {
	Frame []byte
}

func (c StaticFrameCamera) Open(ctx context.Context) (vaultgate.CameraStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &staticStream{frame: cloneFrame(c.Frame)}, nil
}

type staticStream struct {
	frame  []byte
	closed bool
}

func (s *staticStream) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, errors.New("stream closed")
	}
	return cloneFrame(s.frame), nil
}

func (s *staticStream) Close() error {
	s.closed = true
	return nil
}

func cloneFrame(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
