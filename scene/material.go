package scene

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Material is the guard's visual collaborator. It holds the current material
// name.
type Material struct {
	name string
}

func NewMaterial(name string) *Material {
	return &Material{name: name}
}

func (m *Material) Material() string { return m.name }

func (m *Material) SetMaterial(name string) {
	m.name = name
}

func (m *Material) Color() color.RGBA { return MaterialColor(m.name) }

// MaterialColor maps an SVG colour name to RGBA. Unknown names are magenta.
func MaterialColor(name string) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return colornames.Magenta
}
