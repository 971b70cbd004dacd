package render

import (
	"log"

	"github.com/richinsley/glplatform/glapi"
)

// Program is a linked shader program together with the uniforms to apply
// on its next draws.
type Program struct {
	d        *Device
	ref      glapi.Program
	uniforms []NamedUniform

	// names maps source-level identifiers to the identifiers the driver
	// sees, for programs built from translated shaders.
	names map[string]string

	uniformLocs map[string]glapi.Uniform
	attribLocs  map[string]glapi.Attrib
}

// CreateProgram compiles and links a vertex and fragment shader pair. A
// vertex stage that fails to compile is reported without compiling the
// fragment stage.
func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	if err := d.check("create program"); err != nil {
		return nil, err
	}
	vs, err := d.compileShader(vertexSrc, VertexStage)
	if err != nil {
		return nil, err
	}
	fs, err := d.compileShader(fragmentSrc, FragmentStage)
	if err != nil {
		d.f.DeleteShader(vs)
		return nil, err
	}
	ref, err := d.linkProgram(vs, fs)
	if err != nil {
		return nil, err
	}
	return &Program{
		d:           d,
		ref:         ref,
		uniformLocs: make(map[string]glapi.Uniform),
		attribLocs:  make(map[string]glapi.Attrib),
	}, nil
}

func (d *Device) compileShader(source string, stage Stage) (glapi.Shader, error) {
	ty := glapi.Enum(glapi.VERTEX_SHADER)
	if stage == FragmentStage {
		ty = glapi.FRAGMENT_SHADER
	}
	f := d.f
	shader := f.CreateShader(ty)
	f.ShaderSource(shader, source)
	f.CompileShader(shader)
	if f.GetShaderi(shader, glapi.COMPILE_STATUS) == glapi.FALSE {
		logText := f.GetShaderInfoLog(shader)
		f.DeleteShader(shader)
		if logText == "" {
			logText = "no diagnostic available"
		}
		return glapi.Shader{}, &CompileError{Stage: stage, Log: logText}
	}
	return shader, nil
}

// linkProgram consumes both shaders whether or not linking succeeds.
func (d *Device) linkProgram(vs, fs glapi.Shader) (glapi.Program, error) {
	f := d.f
	program := f.CreateProgram()
	f.AttachShader(program, vs)
	f.AttachShader(program, fs)
	f.LinkProgram(program)
	ok := f.GetProgrami(program, glapi.LINK_STATUS) != glapi.FALSE

	f.DetachShader(program, vs)
	f.DetachShader(program, fs)
	f.DeleteShader(vs)
	f.DeleteShader(fs)

	if !ok {
		logText := f.GetProgramInfoLog(program)
		f.DeleteProgram(program)
		if logText == "" {
			logText = "no diagnostic available"
		}
		return glapi.Program{}, &LinkError{Log: logText}
	}
	return program, nil
}

// SetUniform appends a uniform assignment. Nothing reaches the driver
// until the next draw, where the list is applied in order so a later entry
// for the same name overrides an earlier one.
func (p *Program) SetUniform(name string, u Uniform) {
	p.uniforms = append(p.uniforms, NamedUniform{Name: name, Value: u})
}

// ClearUniforms empties the uniform list.
func (p *Program) ClearUniforms() {
	p.uniforms = p.uniforms[:0]
}

// Uniforms returns a copy of the uniform list in insertion order.
func (p *Program) Uniforms() []NamedUniform {
	return append([]NamedUniform(nil), p.uniforms...)
}

// MapNames installs a table from source identifiers to the identifiers
// used by the compiled program. Names absent from the table are used as
// is. Cached locations are dropped.
func (p *Program) MapNames(names map[string]string) {
	p.names = make(map[string]string, len(names))
	for k, v := range names {
		p.names[k] = v
	}
	p.uniformLocs = make(map[string]glapi.Uniform)
	p.attribLocs = make(map[string]glapi.Attrib)
}

func (p *Program) driverName(name string) string {
	if mapped, ok := p.names[name]; ok {
		return mapped
	}
	return name
}

func (p *Program) uniformLocation(name string) glapi.Uniform {
	if loc, ok := p.uniformLocs[name]; ok {
		return loc
	}
	loc := p.d.f.GetUniformLocation(p.ref, p.driverName(name))
	p.uniformLocs[name] = loc
	return loc
}

func (p *Program) attribLocation(name string) glapi.Attrib {
	if loc, ok := p.attribLocs[name]; ok {
		return loc
	}
	loc := p.d.f.GetAttribLocation(p.ref, p.driverName(name))
	p.attribLocs[name] = loc
	return loc
}

// Destroyed reports whether Destroy has been called.
func (p *Program) Destroyed() bool {
	return !p.ref.Valid()
}

// Destroy releases the GPU program. Calling it again is a no-op.
func (p *Program) Destroy() {
	if p.Destroyed() {
		return
	}
	log.Printf("Destroying program %d", p.ref.V)
	p.d.f.DeleteProgram(p.ref)
	p.ref = glapi.Program{}
	p.uniformLocs = make(map[string]glapi.Uniform)
	p.attribLocs = make(map[string]glapi.Attrib)
}
