package extractor

type FieldType string

const (
	FieldTypeString  FieldType = "STRING"
	FieldTypeInteger FieldType = "INTEGER"
	FieldTypeDate    FieldType = "DATE"
	FieldTypeMap     FieldType = "MAP"
)

// Field describes one named value an extractor accepts or produces.
// The description is documentation only and is never validated.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`

	Description string `json:"description,omitempty"`
}

func StringField(name, description string) Field {
	return Field{
		Name: name,
		Type: FieldTypeString,

		Description: description,
	}
}

func IntegerField(name, description string) Field {
	return Field{
		Name: name,
		Type: FieldTypeInteger,

		Description: description,
	}
}

func DateField(name, description string) Field {
	return Field{
		Name: name,
		Type: FieldTypeDate,

		Description: description,
	}
}

func MapField(name, description string) Field {
	return Field{
		Name: name,
		Type: FieldTypeMap,

		Description: description,
	}
}
