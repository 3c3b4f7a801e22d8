package schema

// FieldType enumerates the content field kinds understood by the editing tool.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeText    FieldType = "text"
	TypeURL     FieldType = "url"
	TypeBoolean FieldType = "boolean"
	TypeImage   FieldType = "image"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

// Field describes one field of a document or nested object.
type Field struct {
	Name         string    `json:"name" yaml:"name"`
	Title        string    `json:"title" yaml:"title"`
	Type         FieldType `json:"type" yaml:"type"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Rows         int       `json:"rows,omitempty" yaml:"rows,omitempty"`
	InitialValue any       `json:"initialValue,omitempty" yaml:"initialValue,omitempty"`
	Options      []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Hotspot      bool      `json:"hotspot,omitempty" yaml:"hotspot,omitempty"`
	// Fields lists sub-fields for objects and images (e.g. alt text).
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Of is the item type of an array. Scalar arrays carry an item without a name.
	Of         *Field      `json:"of,omitempty" yaml:"of,omitempty"`
	Validation *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Validation holds the constraints the editing tool enforces on a field.
type Validation struct {
	Required  bool `json:"required,omitempty" yaml:"required,omitempty"`
	Max       int  `json:"max,omitempty" yaml:"max,omitempty"`
	MaxLength int  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

// DocumentType is the schema of one content document type.
type DocumentType struct {
	Name   string  `json:"name" yaml:"name"`
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field returns the named top-level field.
func (d DocumentType) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Sub returns the named sub-field of an object or image field, or of the item
// type when f is an array of objects.
func (f Field) Sub(name string) (Field, bool) {
	fields := f.Fields
	if f.Type == TypeArray && f.Of != nil {
		fields = f.Of.Fields
	}
	for _, s := range fields {
		if s.Name == name {
			return s, true
		}
	}
	return Field{}, false
}
