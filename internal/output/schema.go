package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
)

// Schema describes the document written by the json format.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := reflector.Reflect(&JSONReport{})
	schema.Title = ToolName + " report"
	schema.Description = "Scores, reliability and evidence diff for each analyzed document."
	return schema
}

// WriteSchema writes the indented schema to outputFile, or w when it is empty.
func WriteSchema(w io.Writer, outputFile string) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling schema: %w", err)
	}
	return writeOutput(w, outputFile, append(data, '\n'))
}
