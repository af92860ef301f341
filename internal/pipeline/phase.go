package pipeline

// Phase is one of the ordered generation stages.
type Phase string

const (
	PhaseCleanup                 Phase = "cleanup"
	PhaseCreateResources         Phase = "create_resources"
	PhaseRenderAtomicTemplates   Phase = "render_atomic_templates"
	PhaseRenderComposedTemplates Phase = "render_composed_templates"
	PhaseRenderSources           Phase = "render_sources"
)

// Phases lists the phases in execution order.
func Phases() []Phase {
	return []Phase{
		PhaseCleanup,
		PhaseCreateResources,
		PhaseRenderAtomicTemplates,
		PhaseRenderComposedTemplates,
		PhaseRenderSources,
	}
}

// ResourceGroup orders the CreateResources work of a task.
type ResourceGroup int

const (
	// GroupNone tasks create no ordered resource; they run with GroupItemIcon.
	GroupNone ResourceGroup = iota
	GroupItemIcon
	GroupSpriteIcon
	GroupSpriteValue
)

// resourceGroups lists the dispatch order of CreateResources.
var resourceGroups = []ResourceGroup{GroupItemIcon, GroupSpriteIcon, GroupSpriteValue}

func (g ResourceGroup) String() string {
	switch g {
	case GroupItemIcon:
		return "item_icon"
	case GroupSpriteIcon:
		return "sprite_icon"
	case GroupSpriteValue:
		return "sprite_value"
	default:
		return "none"
	}
}
