package library

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	"git.home.luguber.info/inful/plantuml-generator/internal/manifest"
	"git.home.luguber.info/inful/plantuml-generator/internal/pipeline"
	"git.home.luguber.info/inful/plantuml-generator/internal/templates"
	"git.home.luguber.info/inful/plantuml-generator/internal/urn"
)

// libraryOwner identifies library level tasks.
const libraryOwner = "library"

// PlanOptions configure the tasks of a generation.
type PlanOptions struct {
	OutputDirectory string
	CacheDirectory  string
	// URNs restricts package, module and item tasks; empty selects everything.
	URNs      []urn.URN
	Converter Converter
	Encoder   SpriteEncoder
}

// Plan decomposes the library indexed by r into tasks. Library tasks are
// always planned. An item whose icon references an item outside the URN
// filter also gets the icon tasks of the referenced item.
func Plan(r *manifest.Resolver, opts PlanOptions) []pipeline.Task {
	p := &planner{
		lib:     r.Library(),
		r:       r,
		opts:    opts,
		planned: make(map[string]bool),
	}
	p.planLibrary()
	for pi := range p.lib.Packages {
		pkg := &p.lib.Packages[pi]
		if !pkg.URN.IsIncludedIn(opts.URNs) {
			continue
		}
		p.planPackage(pkg)
		for mi := range pkg.Modules {
			mod := &pkg.Modules[mi]
			if !mod.URN.IsIncludedIn(opts.URNs) {
				continue
			}
			p.planModule(mod)
			for ii := range mod.Items {
				it := &mod.Items[ii]
				if !it.URN.IsIncludedIn(opts.URNs) {
					continue
				}
				p.planItem(pkg, it)
			}
		}
	}
	return p.tasks
}

type planner struct {
	lib     *manifest.Library
	r       *manifest.Resolver
	opts    PlanOptions
	tasks   []pipeline.Task
	planned map[string]bool // icon owners with icon tasks
}

func (p *planner) add(t pipeline.Task) { p.tasks = append(p.tasks, t) }

func (p *planner) out(rel string) string {
	return filepath.Join(p.opts.OutputDirectory, filepath.FromSlash(rel))
}

func (p *planner) cache(rel string) string {
	return filepath.Join(p.opts.CacheDirectory, filepath.FromSlash(rel))
}

func (p *planner) format() string { return p.lib.Customization.IconFormat }

func (p *planner) planLibrary() {
	lib := p.lib
	docs := libraryDocumentation(lib)
	p.add(&templateTask{
		id:       taskID(libraryOwner, kindLibraryBootstrap),
		urn:      libraryOwner,
		template: lib.Templates.Bootstrap,
		dest:     p.out(manifest.LibraryBootstrapPath),
		data: staticData(templates.LibraryBootstrapData{
			LibraryName:   lib.Name,
			RemoteURL:     lib.RemoteURL,
			Customization: lib.Customization,
		}),
	})
	p.add(&templateTask{
		id:       taskID(libraryOwner, kindLibraryDocumentation),
		urn:      libraryOwner,
		template: lib.Templates.Documentation,
		dest:     p.out(manifest.LibraryDocumentationPath),
		data:     staticData(docs),
	})
	p.add(&templateTask{
		id:       taskID(libraryOwner, kindLibrarySummary),
		urn:      libraryOwner,
		template: lib.Templates.Summary,
		dest:     p.out(manifest.LibrarySummaryPath),
		data:     staticData(docs),
	})
}

func libraryDocumentation(lib *manifest.Library) templates.LibraryDocumentationData {
	data := templates.LibraryDocumentationData{LibraryName: lib.Name, RemoteURL: lib.RemoteURL}
	for _, pkg := range lib.Packages {
		summary := templates.PackageSummary{PackageURN: pkg.URN.Value}
		for _, mod := range pkg.Modules {
			ms := templates.ModuleSummary{ModuleURN: mod.URN.Value}
			for _, it := range mod.Items {
				ms.ItemURNs = append(ms.ItemURNs, it.URN.Value)
			}
			summary.Modules = append(summary.Modules, ms)
		}
		data.Packages = append(data.Packages, summary)
	}
	return data
}

func (p *planner) planPackage(pkg *manifest.Package) {
	owner := pkg.URN.Value
	doc := templates.PackageDocumentationData{
		PackageURN:      owner,
		PackageName:     pkg.URN.Name,
		RemoteURL:       p.lib.RemoteURL,
		PathToBase:      pkg.URN.PathToBase,
		EmbeddedEnabled: !pkg.Rendering.SkipEmbedded,
	}
	for _, mod := range pkg.Modules {
		doc.Modules = append(doc.Modules, templates.PackageModule{ModuleURN: mod.URN.Value, ItemCount: len(mod.Items)})
	}

	for _, ex := range pkg.Examples {
		source := manifest.ExampleSourcePath(pkg.URN, ex)
		image := manifest.ExampleImagePath(pkg.URN, ex, p.format())
		doc.Examples = append(doc.Examples, templates.PackageExample{Name: ex.Name, Source: source, Destination: image})
		p.add(&diagramTask{
			templateTask: &templateTask{
				id:       taskID(owner, kindPackageExample, urn.SnakeCase(ex.Name)),
				urn:      owner,
				template: ex.Template,
				dest:     p.out(source),
				scope:    config.CleanupExample,
				data: staticData(templates.PackageExampleData{
					PackageURN: owner,
					PathToBase: pkg.URN.PathToBase,
				}),
			},
			image:       p.out(image),
			imageScope:  config.CleanupExample,
			renderImage: true,
			format:      p.format(),
		})
	}

	p.add(&templateTask{
		id:       taskID(owner, kindPackageBootstrap),
		urn:      owner,
		template: pkg.Templates.Bootstrap,
		dest:     p.out(manifest.PackageBootstrapPath(pkg.URN)),
		data:     staticData(templates.PackageBootstrapData{PackageURN: owner, PackageName: pkg.URN.Name}),
	})

	if !pkg.Rendering.SkipEmbedded {
		for _, mode := range []manifest.EmbeddedMode{manifest.EmbeddedSingle, manifest.EmbeddedFull} {
			p.add(&templateTask{
				id:       taskID(owner, kindPackageEmbedded, strings.ToLower(string(mode))),
				urn:      owner,
				template: pkg.Templates.Embedded,
				dest:     p.out(manifest.PackageEmbeddedPath(pkg.URN, mode)),
				composed: true,
				data:     p.embeddedData(pkg, mode),
			})
		}
	}

	p.add(&templateTask{
		id:       taskID(owner, kindPackageDocumentation),
		urn:      owner,
		template: pkg.Templates.Documentation,
		dest:     p.out(manifest.PackageDocumentationPath(pkg.URN)),
		data:     staticData(doc),
	})
}

// embeddedData reads the bootstraps and item sources written by the atomic
// phase. Missing files, e.g. items outside a URN filter, are skipped.
func (p *planner) embeddedData(pkg *manifest.Package, mode manifest.EmbeddedMode) func() (any, error) {
	var itemFiles []string
	for _, mod := range pkg.Modules {
		for _, it := range mod.Items {
			itemFiles = append(itemFiles, p.out(manifest.ItemSourcePath(it.URN)))
		}
	}
	libraryBootstrap := ""
	if mode == manifest.EmbeddedSingle {
		libraryBootstrap = p.out(manifest.LibraryBootstrapPath)
	}
	packageBootstrap := p.out(manifest.PackageBootstrapPath(pkg.URN))

	return func() (any, error) {
		data := templates.PackageEmbeddedData{Mode: string(mode), PackageURN: pkg.URN.Value}
		var err error
		if libraryBootstrap != "" {
			if data.LibraryBootstrap, err = readOptional(libraryBootstrap); err != nil {
				return nil, err
			}
		}
		if data.PackageBootstrap, err = readOptional(packageBootstrap); err != nil {
			return nil, err
		}
		var items []string
		for _, f := range itemFiles {
			content, err := readOptional(f)
			if err != nil {
				return nil, err
			}
			if content != "" {
				items = append(items, content)
			}
		}
		data.PackageItems = strings.Join(items, "\n")
		return data, nil
	}
}

func (p *planner) planModule(mod *manifest.Module) {
	data := templates.ModuleDocumentationData{
		ModuleURN:  mod.URN.Value,
		ModuleName: mod.URN.Name,
		PathToBase: mod.URN.PathToBase,
		ItemCount:  len(mod.Items),
	}
	families := make(map[string]*templates.ModuleFamily)
	for i := range mod.Items {
		it := &mod.Items[i]
		row := templates.ModuleItem{ItemURN: it.URN.Value, Illustration: p.illustration(it)}
		if it.Family == "" {
			data.ItemsWithoutFamily = append(data.ItemsWithoutFamily, row)
			continue
		}
		f, ok := families[it.Family]
		if !ok {
			f = &templates.ModuleFamily{Name: it.Family, Anchor: urn.SnakeCase(it.Family)}
			families[it.Family] = f
		}
		f.Items = append(f.Items, row)
	}
	for _, f := range families {
		data.Families = append(data.Families, *f)
	}
	sort.Slice(data.Families, func(i, j int) bool { return data.Families[i].Name < data.Families[j].Name })

	p.add(&templateTask{
		id:       taskID(mod.URN.Value, kindModuleDocumentation),
		urn:      mod.URN.Value,
		template: mod.Templates.Documentation,
		dest:     p.out(manifest.ModuleDocumentationPath(mod.URN)),
		data:     staticData(data),
	})
}

// illustration is the icon of an item, else the local image of its first
// element, relative to the output directory.
func (p *planner) illustration(it *manifest.Item) string {
	if iconURN, ok := p.r.IconURN(it); ok {
		return manifest.IconPath(iconURN, p.format())
	}
	if len(it.Elements) > 0 {
		return manifest.SnippetImagePath(it.URN, it.Elements[0].Shape, manifest.SnippetLocal, p.format())
	}
	return ""
}

func (p *planner) planItem(pkg *manifest.Package, it *manifest.Item) {
	iconURN, hasIcon := p.r.IconURN(it)
	if hasIcon {
		owner, _ := p.r.ResolveIcon(it)
		p.planIcon(owner)
	}

	p.add(&templateTask{
		id:       taskID(it.URN.Value, kindItemSource),
		urn:      it.URN.Value,
		template: it.Templates.Source,
		dest:     p.out(manifest.ItemSourcePath(it.URN)),
		scope:    config.CleanupItemSource,
		data:     p.itemSourceData(it, iconURN, hasIcon),
	})

	for _, el := range it.Elements {
		for _, mode := range manifest.SnippetModes {
			p.add(p.snippetTask(pkg, it, el, mode))
		}
	}

	doc := templates.ItemDocumentationData{
		ItemURN:    it.URN.Value,
		ItemName:   it.URN.Name,
		PathToBase: it.URN.Parent().PathToBase,
	}
	if hasIcon {
		doc.Icon = &templates.ItemIllustration{Name: "Illustration", Path: manifest.IconPath(iconURN, p.format())}
		for _, size := range p.lib.Customization.SpriteSizes() {
			doc.SpriteNames = append(doc.SpriteNames, manifest.SpriteName(iconURN, size))
		}
	}
	for _, el := range it.Elements {
		doc.Elements = append(doc.Elements, templates.ItemElement{
			Name:              el.Shape.ElementName(it.URN),
			IllustrationPath:  manifest.SnippetImagePath(it.URN, el.Shape, manifest.SnippetLocal, p.format()),
			LocalSnippetPath:  p.out(manifest.SnippetSourcePath(it.URN, el.Shape, manifest.SnippetLocal)),
			RemoteSnippetPath: p.out(manifest.SnippetSourcePath(it.URN, el.Shape, manifest.SnippetRemote)),
		})
	}
	p.add(&templateTask{
		id:       taskID(it.URN.Value, kindItemDocumentation),
		urn:      it.URN.Value,
		template: it.Templates.Documentation,
		dest:     p.out(manifest.ItemDocumentationPath(it.URN)),
		composed: true,
		data:     staticData(doc),
	})
}

// planIcon adds the icon and sprite tasks of an item owning a Source icon,
// once per owner.
func (p *planner) planIcon(owner *manifest.Item) {
	if p.planned[owner.URN.Value] {
		return
	}
	p.planned[owner.URN.Value] = true

	src := owner.Icon.Source
	if !filepath.IsAbs(src) {
		src = filepath.Join(p.lib.BaseDir(), filepath.FromSlash(src))
	}
	iconPath := p.out(manifest.IconPath(owner.URN, p.format()))
	p.add(&itemIconTask{
		urn:       owner.URN.Value,
		src:       src,
		dest:      iconPath,
		height:    p.lib.Customization.IconHeight,
		converter: p.opts.Converter,
	})
	for _, size := range p.lib.Customization.SpriteSizes() {
		spriteImage := p.cache(manifest.SpriteImagePath(owner.URN, size))
		p.add(&spriteIconTask{
			urn:    owner.URN.Value,
			size:   size.Name,
			src:    iconPath,
			dest:   spriteImage,
			height: size.Height,
		})
		p.add(&spriteValueTask{
			urn:     owner.URN.Value,
			size:    size.Name,
			src:     spriteImage,
			dest:    p.cache(manifest.SpriteValuePath(owner.URN, size)),
			encoder: p.opts.Encoder,
		})
	}
}

// itemSourceData reads the cached sprite values of the item icon, written
// during CreateResources.
func (p *planner) itemSourceData(it *manifest.Item, iconURN urn.URN, hasIcon bool) func() (any, error) {
	var spriteFiles []string
	spriteName := ""
	if hasIcon {
		sizes := p.lib.Customization.SpriteSizes()
		for _, size := range sizes {
			spriteFiles = append(spriteFiles, p.cache(manifest.SpriteValuePath(iconURN, size)))
		}
		spriteName = manifest.SpriteName(iconURN, sizes[len(sizes)-1])
	}

	elements := make([]templates.ElementSource, 0, len(it.Elements))
	for _, el := range it.Elements {
		elements = append(elements, templates.ElementSource{
			Type:           string(el.Shape.Type),
			ProcedureName:  el.Shape.ElementName(it.URN),
			IconURN:        iconURN.Value,
			SpriteName:     spriteName,
			StereotypeName: el.Shape.StereotypeName,
			FamilyName:     it.Family,
			DefaultLabel:   it.URN.Label,
			Properties:     el.Shape.Properties,
		})
	}

	return func() (any, error) {
		data := templates.ItemSourceData{ItemURN: it.URN.Value, Elements: elements}
		for _, f := range spriteFiles {
			sprite, err := readOptional(f)
			if err != nil {
				return nil, err
			}
			if sprite == "" {
				return nil, fmt.Errorf("sprite %s is missing", f)
			}
			data.Sprites = append(data.Sprites, sprite)
		}
		return data, nil
	}
}

func (p *planner) snippetTask(pkg *manifest.Package, it *manifest.Item, el manifest.Element, mode manifest.SnippetMode) *diagramTask {
	procedure := el.Shape.ElementName(it.URN)
	data := templates.ElementSnippetData{
		RemoteURL:     p.lib.RemoteURL,
		PackageURN:    pkg.URN.Value,
		ItemURN:       it.URN.Value,
		PathToBase:    it.URN.Parent().PathToBase,
		ElementShape:  string(el.Shape.Type),
		SnippetMode:   string(mode),
		ProcedureName: procedure,
		VariableName:  urn.UpperCamelCase(procedure),
		PrimaryLabel:  urn.TitleCase(procedure),
	}
	if el.Shape.Type == manifest.ShapeCustom {
		data.Properties = el.Shape.Properties
	}
	return &diagramTask{
		templateTask: &templateTask{
			id:       taskID(it.URN.Value, kindElementSnippet, procedure, strings.ToLower(string(mode))),
			urn:      it.URN.Value,
			template: it.Templates.Snippet,
			dest:     p.out(manifest.SnippetSourcePath(it.URN, el.Shape, mode)),
			scope:    config.CleanupSnippetSource,
			data:     staticData(data),
		},
		image:       p.out(manifest.SnippetImagePath(it.URN, el.Shape, mode, p.format())),
		imageScope:  config.CleanupSnippetImage,
		renderImage: mode == manifest.SnippetLocal,
		format:      p.format(),
	}
}
