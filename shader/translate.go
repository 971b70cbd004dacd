//go:build !js

package shader

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/glplatform/render"
	gst "github.com/richinsley/goshadertranslator"
)

// Target selects the GLSL dialect Translate produces.
type Target int

const (
	// GLSL410 is desktop GLSL 4.10 core, for the native driver.
	GLSL410 Target = iota
	// ESSL is GLSL ES 3.00, for WebGL2.
	ESSL
)

func (t Target) String() string {
	switch t {
	case GLSL410:
		return "glsl410"
	case ESSL:
		return "essl"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// Source is translated shader code plus the identifiers the translator
// renamed, keyed by the name used in the input source.
type Source struct {
	Code  string
	Names map[string]string
}

var (
	translatorOnce sync.Once
	translator     *gst.ShaderTranslator
	translatorErr  error
)

func getTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
		if translatorErr != nil {
			translatorErr = fmt.Errorf("failed to start shader translator: %w", translatorErr)
		}
	})
	return translator, translatorErr
}

// Translate converts a WebGL2 shader to target.
func Translate(src string, stage render.Stage, target Target) (*Source, error) {
	t, err := getTranslator()
	if err != nil {
		return nil, err
	}

	var stageName string
	switch stage {
	case render.VertexStage:
		stageName = "vertex"
	case render.FragmentStage:
		stageName = "fragment"
	default:
		return nil, fmt.Errorf("unknown shader stage %v", stage)
	}

	format := gst.OutputFormatGLSL410
	if target == ESSL {
		format = gst.OutputFormatESSL
	}

	out, err := t.TranslateShader(src, stageName, gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}

	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		if v.MappedName != "" {
			names[name] = v.MappedName
		}
	}
	return &Source{Code: out.Code, Names: names}, nil
}

// TranslateProgram translates both stages and merges their name tables.
func TranslateProgram(vs, fs string, target Target) (vsCode, fsCode string, names map[string]string, err error) {
	v, err := Translate(vs, render.VertexStage, target)
	if err != nil {
		return "", "", nil, err
	}
	f, err := Translate(fs, render.FragmentStage, target)
	if err != nil {
		return "", "", nil, err
	}
	names, err = MergeNames(v.Names, f.Names)
	if err != nil {
		return "", "", nil, err
	}
	return v.Code, f.Code, names, nil
}

// MergeNames combines per-stage name tables. A name shared by both stages
// must map to the same identifier.
func MergeNames(tables ...map[string]string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, t := range tables {
		for name, mapped := range t {
			if prev, ok := merged[name]; ok && prev != mapped {
				return nil, fmt.Errorf("%q is mapped to both %q and %q", name, prev, mapped)
			}
			merged[name] = mapped
		}
	}
	return merged, nil
}

// CreateProgram translates vs and fs for target and links them on d, with
// uniform and attribute names mapped for the translated code.
func CreateProgram(d *render.Device, vs, fs string, target Target) (*render.Program, error) {
	vsCode, fsCode, names, err := TranslateProgram(vs, fs, target)
	if err != nil {
		return nil, err
	}
	p, err := d.CreateProgram(vsCode, fsCode)
	if err != nil {
		return nil, err
	}
	p.MapNames(names)
	return p, nil
}
