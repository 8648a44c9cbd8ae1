package domain

// FieldType is the wire type of one stdin field
type FieldType string

const (
	FieldInt         FieldType = "int"
	FieldFloat       FieldType = "float"
	FieldString      FieldType = "string"
	FieldBool        FieldType = "bool"
	FieldIntArray    FieldType = "int[]"
	FieldFloatArray  FieldType = "float[]"
	FieldStringArray FieldType = "string[]"
)

// InputField is one named, typed parameter of a problem's input
type InputField struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// InputSchema is the ordered list of fields a problem reads from stdin,
// one line per field.
type InputSchema []InputField
