package render

import "fmt"

// AttributeType is the component type of a vertex attribute.
type AttributeType int

const (
	Float AttributeType = iota
	Unsigned
)

// Size returns the byte size of one component.
func (t AttributeType) Size() int {
	return 4
}

func (t AttributeType) String() string {
	if t == Unsigned {
		return "unsigned"
	}
	return "float"
}

// Attribute describes one field of a vertex in declaration order.
type Attribute struct {
	Name  string
	Count int
	Type  AttributeType
}

// Vertex is implemented by struct value types uploaded with RenderVertices;
// pointer types are rejected.
// Attributes must list the struct's fields in memory order and Stride must
// equal the struct's size.
type Vertex interface {
	Stride() int
	Attributes() []Attribute
}

// Offsets returns the byte offset of each attribute of v: the running sum
// of the sizes of the attributes before it. The attributes must fit within
// the stride.
func Offsets(v Vertex) ([]int, error) {
	attrs := v.Attributes()
	offsets := make([]int, len(attrs))
	step := 0
	for i, a := range attrs {
		if a.Count < 1 || a.Count > 4 {
			return nil, fmt.Errorf("%w: attribute %q has %d components", ErrLayout, a.Name, a.Count)
		}
		offsets[i] = step
		step += a.Count * a.Type.Size()
	}
	if step > v.Stride() {
		return nil, fmt.Errorf("%w: attributes need %d bytes, stride is %d", ErrLayout, step, v.Stride())
	}
	return offsets, nil
}
