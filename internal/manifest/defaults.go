package manifest

import (
	"git.home.luguber.info/inful/plantuml-generator/internal/config"
)

// Customization defaults.
const (
	DefaultIconFormat     = "png"
	DefaultIconHeight     = 50
	DefaultTextWidthMax   = 200
	DefaultMsgWidthMax    = 150
	DefaultFontSizeXS     = 10
	DefaultFontSizeSM     = 12
	DefaultFontSizeMD     = 16
	DefaultFontSizeLG     = 20
	DefaultFontColor      = "#212121"
	DefaultFontColorLight = "#757575"
)

// Default stereotypes per shape.
var defaultStereotypes = map[ShapeType]string{
	ShapeIcon:      "IconElement",
	ShapeIconCard:  "IconCardElement",
	ShapeIconGroup: "IconGroupElement",
	ShapeGroup:     "GroupElement",
}

func setDefault[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

// ApplyDefaults fills every unset field of the tree.
func (l *Library) ApplyDefaults() {
	setDefault(&l.Templates.Bootstrap, TemplateLibraryBootstrap)
	setDefault(&l.Templates.Documentation, TemplateLibraryDocumentation)
	setDefault(&l.Templates.Summary, TemplateLibrarySummary)
	setDefault(&l.TemplateDiscoveryPattern, config.DefaultTemplatePattern)
	l.Customization.applyDefaults()

	for pi := range l.Packages {
		p := &l.Packages[pi]
		setDefault(&p.Templates.Bootstrap, TemplatePackageBootstrap)
		setDefault(&p.Templates.Embedded, TemplatePackageEmbedded)
		setDefault(&p.Templates.Documentation, TemplatePackageDocumentation)
		for mi := range p.Modules {
			m := &p.Modules[mi]
			setDefault(&m.Templates.Documentation, TemplateModuleDocumentation)
			for ii := range m.Items {
				it := &m.Items[ii]
				setDefault(&it.Templates.Documentation, TemplateItemDocumentation)
				setDefault(&it.Templates.Source, TemplateItemSource)
				setDefault(&it.Templates.Snippet, TemplateItemSnippet)
				for ei := range it.Elements {
					s := &it.Elements[ei].Shape
					if def, ok := defaultStereotypes[s.Type]; ok {
						setDefault(&s.StereotypeName, def)
					}
				}
			}
		}
	}
}

func (c *Customization) applyDefaults() {
	setDefault(&c.IconFormat, DefaultIconFormat)
	setDefault(&c.IconHeight, DefaultIconHeight)
	setDefault(&c.TextWidthMax, DefaultTextWidthMax)
	setDefault(&c.MsgWidthMax, DefaultMsgWidthMax)
	setDefault(&c.FontSizeXS, DefaultFontSizeXS)
	setDefault(&c.FontSizeSM, DefaultFontSizeSM)
	setDefault(&c.FontSizeMD, DefaultFontSizeMD)
	setDefault(&c.FontSizeLG, DefaultFontSizeLG)
	setDefault(&c.FontColor, DefaultFontColor)
	setDefault(&c.FontColorLight, DefaultFontColorLight)
}
