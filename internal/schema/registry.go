package schema

// Lifecycle actions the editing tool may offer on a document.
const (
	ActionPublish        = "publish"
	ActionDiscardChanges = "discardChanges"
	ActionRestore        = "restore"
	ActionDelete         = "delete"
	ActionDuplicate      = "duplicate"
	ActionUnpublish      = "unpublish"
)

// AllActions is every lifecycle action, in the order the editing tool lists them.
var AllActions = []string{
	ActionPublish, ActionDiscardChanges, ActionRestore,
	ActionDelete, ActionDuplicate, ActionUnpublish,
}

// singletonActions are the only actions allowed on singleton documents.
var singletonActions = map[string]bool{
	ActionPublish:        true,
	ActionDiscardChanges: true,
	ActionRestore:        true,
}

// Registry is the immutable set of content document types.
type Registry struct {
	types      []DocumentType
	byName     map[string]int
	singletons map[string]bool
}

// New builds a registry; every type in singletons must be one of types.
func New(types []DocumentType, singletons []string) *Registry {
	r := &Registry{
		types:      append([]DocumentType(nil), types...),
		byName:     make(map[string]int, len(types)),
		singletons: make(map[string]bool, len(singletons)),
	}
	for i, t := range r.types {
		r.byName[t.Name] = i
	}
	for _, s := range singletons {
		if _, ok := r.byName[s]; ok {
			r.singletons[s] = true
		}
	}
	return r
}

var defaultRegistry = func() *Registry {
	names := make([]string, 0, len(documentTypes))
	for _, t := range documentTypes {
		names = append(names, t.Name)
	}
	// every declared type is a singleton on this site
	return New(documentTypes, names)
}()

// Default returns the site's registry.
func Default() *Registry { return defaultRegistry }

// Get returns the schema for the named type.
func (r *Registry) Get(name string) (DocumentType, bool) {
	i, ok := r.byName[name]
	if !ok {
		return DocumentType{}, false
	}
	return r.types[i], true
}

// All returns all document types in declaration order.
func (r *Registry) All() []DocumentType {
	return append([]DocumentType(nil), r.types...)
}

// Names returns the type names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t.Name)
	}
	return out
}

// IsSingleton reports whether at most one document of the type may exist.
func (r *Registry) IsSingleton(name string) bool { return r.singletons[name] }

// Singletons returns the singleton type names in declaration order.
func (r *Registry) Singletons() []string {
	out := []string{}
	for _, t := range r.types {
		if r.singletons[t.Name] {
			out = append(out, t.Name)
		}
	}
	return out
}

// Templates filters "create new" templates, removing singleton types.
func (r *Registry) Templates(schemaTypes []string) []string {
	out := make([]string, 0, len(schemaTypes))
	for _, t := range schemaTypes {
		if !r.singletons[t] {
			out = append(out, t)
		}
	}
	return out
}

// DocumentActions filters the actions offered for a document of the given
// type. Singletons keep only publish, discard-changes and restore.
func (r *Registry) DocumentActions(schemaType string, actions []string) []string {
	if !r.singletons[schemaType] {
		return actions
	}
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		if singletonActions[a] {
			out = append(out, a)
		}
	}
	return out
}

// StructureItem is one entry of the editing tool's content tree.
type StructureItem struct {
	ID         string          `json:"id" yaml:"id"`
	Title      string          `json:"title" yaml:"title"`
	DocumentID string          `json:"documentId,omitempty" yaml:"documentId,omitempty"`
	Children   []StructureItem `json:"children,omitempty" yaml:"children,omitempty"`
	Divider    bool            `json:"divider,omitempty" yaml:"divider,omitempty"`
}

func singletonItem(typeName, title string) StructureItem {
	return StructureItem{ID: typeName, Title: title, DocumentID: typeName}
}

// Structure returns the content tree: settings, navigation, then the page
// sections in page order. Singletons are pinned to a document id equal to
// their type name.
func Structure() []StructureItem {
	return []StructureItem{
		singletonItem("siteSettings", "Site Settings"),
		singletonItem("navigation", "Navigation"),
		{Divider: true},
		{
			ID:    "pageSections",
			Title: "Page Sections",
			Children: []StructureItem{
				singletonItem("heroSection", "1. Hero"),
				singletonItem("proofSection", "2. Proof Bar"),
				singletonItem("problemsSection", "3. Problems"),
				singletonItem("solutionSection", "4. Solution"),
				singletonItem("processSection", "5. Process"),
				singletonItem("aboutSection", "6. About"),
				singletonItem("speakingSection", "7. Speaking"),
				singletonItem("bookSection", "8. Book"),
				singletonItem("podcastSection", "9. Podcast"),
				singletonItem("contactSection", "10. Contact"),
				singletonItem("footerSection", "11. Footer"),
			},
		},
	}
}
