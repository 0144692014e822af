package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadPattern is returned for output patterns holding anything but at
// most one integer verb.
var ErrBadPattern = errors.New("pattern may hold one integer verb (%d)")

// SequenceSurface is a Framebuffer that writes every flushed frame to disk.
// Pattern may hold one integer verb (e.g. "out/frame-%04d.webp") for the
// frame number; without one each flush overwrites the same file.
type SequenceSurface struct {
	*Framebuffer
	Pattern   string
	PixelSize int

	numbered bool
	frame    int
}

// NewSequenceSurface creates a sequence surface of the given size.
func NewSequenceSurface(width, height int, pattern string, pixelSize int) (*SequenceSurface, error) {
	verbs, err := frameVerbs(pattern)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", pattern, err)
	}
	if _, err := FormatFromPath(pattern); err != nil {
		return nil, fmt.Errorf("output %s: %w", pattern, err)
	}
	return &SequenceSurface{
		Framebuffer: NewFramebuffer(width, height),
		Pattern:     pattern,
		PixelSize:   pixelSize,
		numbered:    verbs == 1,
	}, nil
}

// frameVerbs counts the %d verbs in pattern. Flags and width are allowed,
// %% is a literal percent sign.
func frameVerbs(pattern string) (int, error) {
	n := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		i++
		if i < len(pattern) && pattern[i] == '%' {
			continue
		}
		for i < len(pattern) && strings.IndexByte("+-# 0123456789", pattern[i]) >= 0 {
			i++
		}
		if i == len(pattern) || pattern[i] != 'd' {
			return 0, ErrBadPattern
		}
		n++
	}
	if n > 1 {
		return 0, ErrBadPattern
	}
	return n, nil
}

// Frames returns the number of frames written so far.
func (s *SequenceSurface) Frames() int {
	return s.frame
}

// Path returns the file the given frame is written to.
func (s *SequenceSurface) Path(frame int) string {
	if s.numbered {
		return fmt.Sprintf(s.Pattern, frame)
	}
	return strings.ReplaceAll(s.Pattern, "%%", "%")
}

// Flush encodes the current frame.
func (s *SequenceSurface) Flush() error {
	path := s.Path(s.frame)
	if err := SaveImage(path, s.Scaled(s.PixelSize)); err != nil {
		Logger().Warn("frame not written", "path", path, "err", err)
		return fmt.Errorf("flush: %w", err)
	}
	Logger().Debug("frame written", "path", path, "frame", s.frame)
	s.frame++
	return nil
}
