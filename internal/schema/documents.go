package schema

func str(name, title string) Field { return Field{Name: name, Title: title, Type: TypeString} }

func text(name, title string, rows int) Field {
	return Field{Name: name, Title: title, Type: TypeText, Rows: rows}
}

func link(name, title string) Field { return Field{Name: name, Title: title, Type: TypeURL} }

func flag(name, title string, initial bool) Field {
	return Field{Name: name, Title: title, Type: TypeBoolean, InitialValue: initial}
}

func initial(f Field, v any) Field {
	f.InitialValue = v
	return f
}

func describe(f Field, d string) Field {
	f.Description = d
	return f
}

// image declares an image field; withAlt adds the alt-text sub-field.
func image(name, title string, hotspot, withAlt bool) Field {
	f := Field{Name: name, Title: title, Type: TypeImage, Hotspot: hotspot}
	if withAlt {
		f.Fields = []Field{str("alt", "Alt Text")}
	}
	return f
}

func object(name, title string, fields ...Field) Field {
	return Field{Name: name, Title: title, Type: TypeObject, Fields: fields}
}

// list declares an array of keyed objects.
func list(name, title string, fields ...Field) Field {
	return Field{Name: name, Title: title, Type: TypeArray, Of: &Field{Type: TypeObject, Fields: fields}}
}

// scalars declares an array of scalar values of type t.
func scalars(name, title string, t FieldType) Field {
	return Field{Name: name, Title: title, Type: TypeArray, Of: &Field{Type: t}}
}

func capped(f Field, n int) Field {
	if f.Validation == nil {
		f.Validation = &Validation{}
	}
	f.Validation.Max = n
	return f
}

func required(f Field) Field {
	if f.Validation == nil {
		f.Validation = &Validation{}
	}
	f.Validation.Required = true
	return f
}

func maxLength(f Field, n int) Field {
	if f.Validation == nil {
		f.Validation = &Validation{}
	}
	f.Validation.MaxLength = n
	return f
}

func options(f Field, opts ...string) Field {
	f.Options = opts
	return f
}

func statsList(title string, limit int) Field {
	return capped(list("stats", title, str("value", "Value"), str("label", "Label")), limit)
}

var siteSettings = DocumentType{
	Name:  "siteSettings",
	Title: "Site Settings",
	Fields: []Field{
		required(str("siteTitle", "Site Title")),
		maxLength(text("siteDescription", "Meta Description", 3), 160),
		scalars("keywords", "SEO Keywords", TypeString),
		str("author", "Author"),
		str("twitterHandle", "Twitter Handle"),
		image("logo", "Logo", true, true),
		image("favicon", "Favicon", false, false),
		describe(image("ogImage", "Open Graph Image (1200x630)", false, false), "Default social sharing image"),
		link("calendlyUrl", "Calendly URL"),
		str("email", "Email Address"),
		list("socialLinks", "Social Links",
			options(str("platform", "Platform"), "LinkedIn", "Twitter/X", "Instagram", "YouTube", "Facebook"),
			link("url", "URL"),
		),
	},
}

var navigation = DocumentType{
	Name:  "navigation",
	Title: "Navigation",
	Fields: []Field{
		list("links", "Nav Links", str("label", "Label"), str("href", "Link (anchor or URL)")),
		initial(str("ctaText", "CTA Button Text"), "Book a call"),
		link("ctaLink", "CTA Button Link"),
	},
}

var heroSection = DocumentType{
	Name:  "heroSection",
	Title: "Hero Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow Text"), "Healthcare AI & Data Strategy"),
		text("headline", "Headline", 2),
		text("body", "Body Copy", 5),
		object("primaryCta", "Primary CTA", str("text", "Button Text"), link("url", "URL")),
		object("secondaryCta", "Secondary CTA", str("text", "Button Text"), str("href", "Anchor Link")),
		str("badgeQuote", "Floating Badge Quote"),
		initial(str("ctaSubtext", "CTA Subtext (italic)"), "30 minutes. Calm, diagnostic, no pitch."),
		statsList("Stats Row", 6),
		image("heroImage", "Hero Image", true, true),
	},
}

var proofSection = DocumentType{
	Name:  "proofSection",
	Title: "Proof Bar",
	Fields: []Field{
		describe(scalars("items", "Proof Items", TypeString),
			"Credential badges displayed in the proof strip. Drag to reorder."),
	},
}

var problemsSection = DocumentType{
	Name:  "problemsSection",
	Title: "Problems Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "The Problem"),
		text("heading", "Section Heading", 2),
		list("problems", "Problem Cards", str("heading", "Problem Heading"), text("body", "Problem Description", 3)),
		text("pullquote", "Pullquote Text", 4),
	},
}

var solutionSection = DocumentType{
	Name:  "solutionSection",
	Title: "Solution Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "The Solution"),
		text("heading", "Section Heading", 2),
		text("intro", "Intro Paragraph", 5),
		list("outcomes", "Outcome Cards",
			str("number", "Number Label"),
			str("heading", "Outcome Heading"),
			text("body", "Outcome Description", 2),
		),
	},
}

var processSection = DocumentType{
	Name:  "processSection",
	Title: "Process Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "How We Work"),
		str("heading", "Section Heading"),
		list("steps", "Process Steps",
			str("number", "Step Number"),
			str("heading", "Step Heading"),
			text("body", "Step Body", 3),
			text("detail", "Detail / Aside", 3),
		),
		object("cta", "CTA", str("text", "Button Text"), link("url", "URL")),
		str("ctaSubtext", "CTA Subtext"),
	},
}

var aboutSection = DocumentType{
	Name:  "aboutSection",
	Title: "About Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "The Guide"),
		str("name", "Name"),
		str("title", "Title / Role"),
		describe(scalars("bio", "Bio Paragraphs", TypeText), "Each item becomes a separate paragraph"),
		image("portrait", "Portrait Photo", true, true),
		str("quote", "Portrait Overlay Quote"),
		scalars("credentials", "Credentials", TypeString),
		statsList("Stats Grid", 4),
		object("primaryCta", "Primary CTA", str("text", "Text"), str("href", "Link")),
		object("secondaryCta", "Secondary CTA", str("text", "Text"), str("href", "Link")),
	},
}

var speakingSection = DocumentType{
	Name:  "speakingSection",
	Title: "Speaking Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "Speaking"),
		str("heading", "Display Heading"),
		text("tagline", "Tagline (italic)", 2),
		image("photo", "Speaking Photo", true, true),
		list("topics", "Speaking Topics",
			str("number", "Number"),
			str("heading", "Topic Title"),
			text("body", "Description", 2),
		),
		str("ctaHeading", "CTA Card Heading"),
		str("ctaBody", "CTA Card Body"),
		initial(str("ctaButtonText", "CTA Button Text"), "Inquire"),
		str("ctaButtonHref", "CTA Button Link"),
	},
}

var bookSection = DocumentType{
	Name:  "bookSection",
	Title: "Book Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "Published Work"),
		str("bookTitle", "Book Title"),
		text("subtitle", "Subtitle", 2),
		text("description", "Description", 3),
		initial(str("ctaText", "CTA Button Text"), "Get the Book"),
		link("purchaseUrl", "Purchase URL"),
		describe(image("coverImage", "Cover Image", true, false), "Optional: upload actual book cover."),
	},
}

var podcastSection = DocumentType{
	Name:  "podcastSection",
	Title: "Podcast Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "Podcast"),
		str("heading", "Podcast Name"),
		text("description", "Description", 3),
		object("latestEpisode", "Latest Episode",
			str("title", "Episode Title"),
			text("description", "Episode Description", 2),
		),
		list("platforms", "Platform Links", str("name", "Platform Name"), link("url", "URL")),
	},
}

var contactSection = DocumentType{
	Name:  "contactSection",
	Title: "Contact Section",
	Fields: []Field{
		initial(str("eyebrow", "Eyebrow"), "Get in Touch"),
		text("heading", "Heading", 2),
		text("body", "Body Copy", 3),
		object("bookingCard", "Booking Card",
			initial(str("label", "Label"), "Prefer to book directly?"),
			str("buttonText", "Button Text"),
			link("buttonUrl", "Button URL"),
			str("subtext", "Subtext"),
		),
		str("email", "Contact Email"),
		list("formFields", "Form Fields",
			str("label", "Field Label"),
			str("name", "Field Name (HTML)"),
			options(str("type", "Field Type"), "text", "email", "textarea"),
			flag("required", "Required", true),
		),
		str("successHeading", "Success Message Heading"),
		text("successBody", "Success Message Body", 2),
	},
}

var footerSection = DocumentType{
	Name:  "footerSection",
	Title: "Footer",
	Fields: []Field{
		text("brandDescription", "Brand Description", 3),
		list("navSections", "Footer Nav Sections",
			str("heading", "Column Heading"),
			list("links", "Links",
				str("label", "Label"),
				str("href", "URL or Anchor"),
				flag("external", "External Link?", false),
			),
		),
		describe(str("copyrightText", "Copyright Text"), "Use {year} for dynamic year"),
	},
}

// documentTypes is the declaration order used by the editing tool.
var documentTypes = []DocumentType{
	siteSettings,
	navigation,
	heroSection,
	proofSection,
	problemsSection,
	solutionSection,
	processSection,
	aboutSection,
	speakingSection,
	bookSection,
	podcastSection,
	contactSection,
	footerSection,
}
