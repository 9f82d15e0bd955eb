// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package stack provides the frame stack used to walk a document iteratively.
//
// Both the decoder's element nesting and the redaction filter keep one frame
// per open tree level and close frames by popping down to the level of the
// next node, so they share this implementation.
package stack // import "mellium.im/wbxml/internal/stack"

// Stack is a stack of values, each tagged with the tree level at which it was
// opened.
// The zero value is an empty stack ready to use.
type Stack[T any] struct {
	frames []frame[T]
}

type frame[T any] struct {
	level int
	v     T
}

// Len returns the number of open frames.
func (s *Stack[T]) Len() int {
	return len(s.frames)
}

// Push opens a new frame at level.
// Levels must strictly increase from the bottom of the stack to the top; Push
// panics if level is not greater than the level of the current top frame.
func (s *Stack[T]) Push(level int, v T) {
	if n := len(s.frames); n > 0 && s.frames[n-1].level >= level {
		panic("stack: push would not nest inside the current frame")
	}
	s.frames = append(s.frames, frame[T]{level: level, v: v})
}

// Top returns the value and level of the top frame.
// If the stack is empty ok is false.
func (s *Stack[T]) Top() (v T, level int, ok bool) {
	n := len(s.frames)
	if n == 0 {
		return v, -1, false
	}
	f := s.frames[n-1]
	return f.v, f.level, true
}

// PopTo closes every frame opened at level or deeper, from the top down,
// calling closeFn for each one if it is not nil.
// It returns the number of frames closed.
func (s *Stack[T]) PopTo(level int, closeFn func(level int, v T)) int {
	closed := 0
	for n := len(s.frames); n > 0 && s.frames[n-1].level >= level; n = len(s.frames) {
		f := s.frames[n-1]
		var zero T
		s.frames[n-1].v = zero
		s.frames = s.frames[:n-1]
		if closeFn != nil {
			closeFn(f.level, f.v)
		}
		closed++
	}
	return closed
}
