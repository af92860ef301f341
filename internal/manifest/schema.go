package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the published manifest schema.
const SchemaID = "https://github.com/tmorin/plantuml-generator/schema/library.json"

// Schema reflects the JSON schema of the library manifest.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&Library{})
	s.ID = SchemaID
	s.Title = "Library"
	s.Description = "The manifest of a PlantUML icon library."
	return s
}

// SchemaJSON renders the schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	raw, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(raw, '\n'), nil
}
