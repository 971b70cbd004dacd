package render

// Uniform is a value bound to a named shader uniform at draw time: either
// a Vec2 or a Sampler.
type Uniform interface {
	isUniform()
}

// Vec2 is a vec2 uniform.
type Vec2 struct {
	X, Y float32
}

// Sampler binds a texture to a sampler2D uniform. The texture is shared,
// not copied: destroying it invalidates every Sampler that refers to it.
type Sampler struct {
	Texture *Texture
}

func (Vec2) isUniform()    {}
func (Sampler) isUniform() {}

// NamedUniform is one entry of a program's uniform list.
type NamedUniform struct {
	Name  string
	Value Uniform
}
