package content

import (
	"fmt"
	"strings"
)

// Field is one entry of a GROQ projection.
type Field struct {
	Name string
	// Image dereferences the asset (asset->); Alt also projects alt text.
	Image bool
	Alt   bool
	// Keyed marks an array of keyed objects; _key is projected first.
	Keyed  bool
	Fields []Field
}

func f(name string) Field { return Field{Name: name} }

func img(name string, alt bool) Field { return Field{Name: name, Image: true, Alt: alt} }

func obj(name string, fields ...Field) Field { return Field{Name: name, Fields: fields} }

func keyed(name string, fields ...Field) Field { return Field{Name: name, Keyed: true, Fields: fields} }

// Projection maps one singleton document type onto a response key.
type Projection struct {
	Key    string
	Type   string
	Fields []Field
}

// Sections lists, in page order, what AllSectionsQuery projects. It must stay
// in lockstep with the schema registry and the bundle types in types.go.
var Sections = []Projection{
	{Key: "siteSettings", Type: "siteSettings", Fields: []Field{
		f("siteTitle"), f("siteDescription"), f("keywords"), f("author"), f("twitterHandle"),
		img("logo", true), img("favicon", false), img("ogImage", false),
		f("calendlyUrl"), f("email"),
		keyed("socialLinks", f("platform"), f("url")),
	}},
	{Key: "navigation", Type: "navigation", Fields: []Field{
		keyed("links", f("label"), f("href")),
		f("ctaText"), f("ctaLink"),
	}},
	{Key: "hero", Type: "heroSection", Fields: []Field{
		f("eyebrow"), f("headline"), f("body"),
		obj("primaryCta", f("text"), f("url")),
		obj("secondaryCta", f("text"), f("href")),
		f("badgeQuote"), f("ctaSubtext"),
		keyed("stats", f("value"), f("label")),
		img("heroImage", true),
	}},
	{Key: "proof", Type: "proofSection", Fields: []Field{
		f("items"),
	}},
	{Key: "problems", Type: "problemsSection", Fields: []Field{
		f("eyebrow"), f("heading"),
		keyed("problems", f("heading"), f("body")),
		f("pullquote"),
	}},
	{Key: "solution", Type: "solutionSection", Fields: []Field{
		f("eyebrow"), f("heading"), f("intro"),
		keyed("outcomes", f("number"), f("heading"), f("body")),
	}},
	{Key: "process", Type: "processSection", Fields: []Field{
		f("eyebrow"), f("heading"),
		keyed("steps", f("number"), f("heading"), f("body"), f("detail")),
		obj("cta", f("text"), f("url")),
		f("ctaSubtext"),
	}},
	{Key: "about", Type: "aboutSection", Fields: []Field{
		f("eyebrow"), f("name"), f("title"), f("bio"),
		img("portrait", true),
		f("quote"), f("credentials"),
		keyed("stats", f("value"), f("label")),
		obj("primaryCta", f("text"), f("href")),
		obj("secondaryCta", f("text"), f("href")),
	}},
	{Key: "speaking", Type: "speakingSection", Fields: []Field{
		f("eyebrow"), f("heading"), f("tagline"),
		img("photo", true),
		keyed("topics", f("number"), f("heading"), f("body")),
		f("ctaHeading"), f("ctaBody"), f("ctaButtonText"), f("ctaButtonHref"),
	}},
	{Key: "book", Type: "bookSection", Fields: []Field{
		f("eyebrow"), f("bookTitle"), f("subtitle"), f("description"),
		f("ctaText"), f("purchaseUrl"),
		img("coverImage", false),
	}},
	{Key: "podcast", Type: "podcastSection", Fields: []Field{
		f("eyebrow"), f("heading"), f("description"),
		obj("latestEpisode", f("title"), f("description")),
		keyed("platforms", f("name"), f("url")),
	}},
	{Key: "contact", Type: "contactSection", Fields: []Field{
		f("eyebrow"), f("heading"), f("body"),
		obj("bookingCard", f("label"), f("buttonText"), f("buttonUrl"), f("subtext")),
		f("email"),
		keyed("formFields", f("label"), f("name"), f("type"), f("required")),
		f("successHeading"), f("successBody"),
	}},
	{Key: "footer", Type: "footerSection", Fields: []Field{
		f("brandDescription"),
		keyed("navSections", f("heading"), keyed("links", f("label"), f("href"), f("external"))),
		f("copyrightText"),
	}},
}

// AllSectionsQuery fetches every page section in one round trip.
var AllSectionsQuery = Compose(Sections)

// Compose renders projections as one GROQ object query.
func Compose(ps []Projection) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, p := range ps {
		fmt.Fprintf(&b, "  %q: *[_type == %q][0] ", p.Key, p.Type)
		writeFields(&b, p.Fields, 1)
		if i < len(ps)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func writeFields(b *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat("  ", depth+1)
	b.WriteString("{\n")
	for i, fld := range fields {
		b.WriteString(indent)
		writeField(b, fld, depth+1)
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("}")
}

func writeField(b *strings.Builder, fld Field, depth int) {
	switch {
	case fld.Image && fld.Alt:
		fmt.Fprintf(b, "%s { asset->, alt }", fld.Name)
	case fld.Image:
		fmt.Fprintf(b, "%s { asset-> }", fld.Name)
	case fld.Keyed:
		fmt.Fprintf(b, "%s[] ", fld.Name)
		writeFields(b, append([]Field{f("_key")}, fld.Fields...), depth)
	case len(fld.Fields) > 0:
		fmt.Fprintf(b, "%s ", fld.Name)
		writeFields(b, fld.Fields, depth)
	default:
		b.WriteString(fld.Name)
	}
}

// SingletonCountQuery counts published documents per type. More than one
// document of a singleton type means the editing-tool policy was bypassed.
func SingletonCountQuery(types []string) string {
	var b strings.Builder
	b.WriteString("{")
	for i, t := range types {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: count(*[_type == %q && !(_id in path(\"drafts.**\"))])", t, t)
	}
	b.WriteString("}")
	return b.String()
}

// DocumentsQuery returns the raw documents of the types given in $types.
const DocumentsQuery = `*[_type in $types] | order(_type asc, _id asc)`
