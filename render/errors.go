package render

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrNoContext is reported when no graphics context is current.
	ErrNoContext = errors.New("no current graphics context")
	// ErrDestroyed is reported when a released resource is used.
	ErrDestroyed = errors.New("resource has been destroyed")
	// ErrLayout is reported when a vertex type's declared attributes do not
	// describe its memory layout.
	ErrLayout = errors.New("vertex layout does not match vertex type")
)

// Stage identifies a shader stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// CompileError carries the driver's diagnostic for a shader that failed to
// compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the driver's diagnostic for a program that failed to
// link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// BoundsError reports a region that does not fit inside a texture.
type BoundsError struct {
	Size   image.Point
	Region image.Rectangle
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("region %v is outside texture bounds %dx%d", e.Region, e.Size.X, e.Size.Y)
}

// ResourceLimitError reports a request that exceeds a driver limit.
type ResourceLimitError struct {
	Resource  string
	Requested int
	Limit     int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("%s: requested %d, driver limit is %d", e.Resource, e.Requested, e.Limit)
}

// PreconditionError reports a call made in a state the operation does not
// support. Err is one of ErrNoContext, ErrDestroyed or ErrLayout, possibly
// wrapped with detail.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }
