package jsonschema

// Schema is the declarative wire representation a schema document is written
// in. It deliberately covers only the constructs the validator understands;
// loading rejects anything else so documents never half-work.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union. Discriminator is a local extension: when set, each oneOf variant
	// must pin the named field to a single-value enum so dispatch is keyed,
	// not trial-and-error.
	OneOf         []*Schema `json:"oneOf,omitempty"`
	Discriminator string    `json:"discriminator,omitempty"`

	// Enum
	Enum []any `json:"enum,omitempty"`

	// References
	Ref  string             `json:"$ref,omitempty"`
	Defs map[string]*Schema `json:"$defs,omitempty"`
}
