package register

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/errs"
)

// AssessmentSchema emits a self-contained JSON Schema for the stored
// assessment document, for agencies validating exports or building
// integrations against the register.
func AssessmentSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&assessment.Assessment{})
	schema.Title = "Algorithmic Impact Assessment"
	schema.Description = "Assessment document stored for each AI system in the register."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errs.Wrap(err, "encode assessment schema")
	}
	return data, nil
}
