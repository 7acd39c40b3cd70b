// Package export projects a stored crawl configuration into the two
// artifacts consumed by the crawler: config.yaml and frequency_words.txt.
package export

// Kind discriminates the three document node shapes.
type Kind int

// Document node kinds.
const (
	// KindScalar is a leaf value: string, bool, int, float64 or nil.
	KindScalar Kind = iota
	// KindList is an ordered sequence of documents.
	KindList
	// KindMap is an ordered set of key/document fields.
	KindMap
)

// Document is the nested, typed structure rendered to YAML.
//
// It is a tagged variant rather than an untyped map so the serializer's
// branching is exhaustive and field order survives to the output, which the
// crawler's parser relies on.
type Document struct {
	Kind   Kind
	Scalar any        // Set when Kind is KindScalar.
	Items  []Document // Set when Kind is KindList.
	Fields []Field    // Set when Kind is KindMap.
}

// Field is one ordered key/value pair of a map document.
type Field struct {
	Key   string
	Value Document
}

// Str builds a string scalar document.
func Str(v string) Document { return Document{Kind: KindScalar, Scalar: v} }

// Bool builds a boolean scalar document.
func Bool(v bool) Document { return Document{Kind: KindScalar, Scalar: v} }

// Int builds an integer scalar document.
func Int(v int) Document { return Document{Kind: KindScalar, Scalar: v} }

// Float builds a float scalar document.
func Float(v float64) Document { return Document{Kind: KindScalar, Scalar: v} }

// List builds a list document from its items.
func List(items ...Document) Document { return Document{Kind: KindList, Items: items} }

// Map builds a map document preserving the given field order.
func Map(fields ...Field) Document { return Document{Kind: KindMap, Fields: fields} }

// F builds one map field.
func F(key string, value Document) Field { return Field{Key: key, Value: value} }

// Plain converts the document to untyped Go values suitable for JSON
// encoding. Map field order is lost in the conversion.
func (d Document) Plain() any {
	switch d.Kind {
	case KindList:
		items := make([]any, 0, len(d.Items))
		for _, item := range d.Items {
			items = append(items, item.Plain())
		}
		return items
	case KindMap:
		fields := make(map[string]any, len(d.Fields))
		for _, field := range d.Fields {
			fields[field.Key] = field.Value.Plain()
		}
		return fields
	default:
		return d.Scalar
	}
}

// Get returns the value of a map field by key.
func (d Document) Get(key string) (Document, bool) {
	if d.Kind != KindMap {
		return Document{}, false
	}
	for _, field := range d.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return Document{}, false
}
