package content

// Section Data Bundles as projected by AllSectionsQuery. The content store may
// return partial or absent documents, so every field is optional: sections are
// pointers (nil when the document is unset) and scalars use their zero value.

// Dimensions of an image asset.
type Dimensions struct {
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	AspectRatio float64 `json:"aspectRatio,omitempty"`
}

// AssetMetadata carries what the asset store computed on upload.
type AssetMetadata struct {
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	LQIP       string      `json:"lqip,omitempty"`
}

// Asset is a resolved (dereferenced) media asset, or a bare reference when
// only Ref is set.
type Asset struct {
	ID        string         `json:"_id,omitempty"`
	Ref       string         `json:"_ref,omitempty"`
	URL       string         `json:"url,omitempty"`
	Extension string         `json:"extension,omitempty"`
	MimeType  string         `json:"mimeType,omitempty"`
	Metadata  *AssetMetadata `json:"metadata,omitempty"`
}

// Image is an image field: a pointer into the asset store plus alt text.
type Image struct {
	Asset *Asset `json:"asset,omitempty"`
	Alt   string `json:"alt,omitempty"`
}

// AssetID returns the asset document id, preferring the resolved id.
func (i *Image) AssetID() string {
	if i == nil || i.Asset == nil {
		return ""
	}
	if i.Asset.ID != "" {
		return i.Asset.ID
	}
	return i.Asset.Ref
}

// HasAsset reports whether the image references an asset.
func (i *Image) HasAsset() bool { return i.AssetID() != "" }

type Cta struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
	Href string `json:"href,omitempty"`
}

type Stat struct {
	Key   string `json:"_key"`
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

type SocialLink struct {
	Key      string `json:"_key"`
	Platform string `json:"platform,omitempty"`
	URL      string `json:"url,omitempty"`
}

type SiteSettingsData struct {
	SiteTitle       string       `json:"siteTitle,omitempty"`
	SiteDescription string       `json:"siteDescription,omitempty"`
	Keywords        []string     `json:"keywords,omitempty"`
	Author          string       `json:"author,omitempty"`
	TwitterHandle   string       `json:"twitterHandle,omitempty"`
	Logo            *Image       `json:"logo,omitempty"`
	Favicon         *Image       `json:"favicon,omitempty"`
	OGImage         *Image       `json:"ogImage,omitempty"`
	CalendlyURL     string       `json:"calendlyUrl,omitempty"`
	Email           string       `json:"email,omitempty"`
	SocialLinks     []SocialLink `json:"socialLinks,omitempty"`
}

type NavLink struct {
	Key   string `json:"_key"`
	Label string `json:"label,omitempty"`
	Href  string `json:"href,omitempty"`
}

type NavigationData struct {
	Links   []NavLink `json:"links,omitempty"`
	CtaText string    `json:"ctaText,omitempty"`
	CtaLink string    `json:"ctaLink,omitempty"`
}

type HeroData struct {
	Eyebrow      string `json:"eyebrow,omitempty"`
	Headline     string `json:"headline,omitempty"`
	Body         string `json:"body,omitempty"`
	PrimaryCta   *Cta   `json:"primaryCta,omitempty"`
	SecondaryCta *Cta   `json:"secondaryCta,omitempty"`
	BadgeQuote   string `json:"badgeQuote,omitempty"`
	CtaSubtext   string `json:"ctaSubtext,omitempty"`
	Stats        []Stat `json:"stats,omitempty"`
	HeroImage    *Image `json:"heroImage,omitempty"`
}

type ProofData struct {
	Items []string `json:"items,omitempty"`
}

type ProblemCard struct {
	Key     string `json:"_key"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

type ProblemsData struct {
	Eyebrow   string        `json:"eyebrow,omitempty"`
	Heading   string        `json:"heading,omitempty"`
	Problems  []ProblemCard `json:"problems,omitempty"`
	Pullquote string        `json:"pullquote,omitempty"`
}

type OutcomeCard struct {
	Key     string `json:"_key"`
	Number  string `json:"number,omitempty"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

type SolutionData struct {
	Eyebrow  string        `json:"eyebrow,omitempty"`
	Heading  string        `json:"heading,omitempty"`
	Intro    string        `json:"intro,omitempty"`
	Outcomes []OutcomeCard `json:"outcomes,omitempty"`
}

type ProcessStep struct {
	Key     string `json:"_key"`
	Number  string `json:"number,omitempty"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type ProcessData struct {
	Eyebrow    string        `json:"eyebrow,omitempty"`
	Heading    string        `json:"heading,omitempty"`
	Steps      []ProcessStep `json:"steps,omitempty"`
	Cta        *Cta          `json:"cta,omitempty"`
	CtaSubtext string        `json:"ctaSubtext,omitempty"`
}

type AboutData struct {
	Eyebrow      string   `json:"eyebrow,omitempty"`
	Name         string   `json:"name,omitempty"`
	Title        string   `json:"title,omitempty"`
	Bio          []string `json:"bio,omitempty"`
	Portrait     *Image   `json:"portrait,omitempty"`
	Quote        string   `json:"quote,omitempty"`
	Credentials  []string `json:"credentials,omitempty"`
	Stats        []Stat   `json:"stats,omitempty"`
	PrimaryCta   *Cta     `json:"primaryCta,omitempty"`
	SecondaryCta *Cta     `json:"secondaryCta,omitempty"`
}

type SpeakingTopic struct {
	Key     string `json:"_key"`
	Number  string `json:"number,omitempty"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

type SpeakingData struct {
	Eyebrow       string          `json:"eyebrow,omitempty"`
	Heading       string          `json:"heading,omitempty"`
	Tagline       string          `json:"tagline,omitempty"`
	Photo         *Image          `json:"photo,omitempty"`
	Topics        []SpeakingTopic `json:"topics,omitempty"`
	CtaHeading    string          `json:"ctaHeading,omitempty"`
	CtaBody       string          `json:"ctaBody,omitempty"`
	CtaButtonText string          `json:"ctaButtonText,omitempty"`
	CtaButtonHref string          `json:"ctaButtonHref,omitempty"`
}

type BookData struct {
	Eyebrow     string `json:"eyebrow,omitempty"`
	BookTitle   string `json:"bookTitle,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	CtaText     string `json:"ctaText,omitempty"`
	PurchaseURL string `json:"purchaseUrl,omitempty"`
	CoverImage  *Image `json:"coverImage,omitempty"`
}

type Episode struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type PodcastPlatform struct {
	Key  string `json:"_key"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type PodcastData struct {
	Eyebrow       string            `json:"eyebrow,omitempty"`
	Heading       string            `json:"heading,omitempty"`
	Description   string            `json:"description,omitempty"`
	LatestEpisode *Episode          `json:"latestEpisode,omitempty"`
	Platforms     []PodcastPlatform `json:"platforms,omitempty"`
}

// FormField types accepted by the contact form.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldTextarea = "textarea"
)

type FormField struct {
	Key      string `json:"_key"`
	Label    string `json:"label,omitempty"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
	Required *bool  `json:"required,omitempty"`
}

type BookingCard struct {
	Label      string `json:"label,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonURL  string `json:"buttonUrl,omitempty"`
	Subtext    string `json:"subtext,omitempty"`
}

type ContactData struct {
	Eyebrow        string       `json:"eyebrow,omitempty"`
	Heading        string       `json:"heading,omitempty"`
	Body           string       `json:"body,omitempty"`
	BookingCard    *BookingCard `json:"bookingCard,omitempty"`
	Email          string       `json:"email,omitempty"`
	FormFields     []FormField  `json:"formFields"`
	SuccessHeading string       `json:"successHeading,omitempty"`
	SuccessBody    string       `json:"successBody,omitempty"`
}

type FooterLink struct {
	Key      string `json:"_key"`
	Label    string `json:"label,omitempty"`
	Href     string `json:"href,omitempty"`
	External bool   `json:"external,omitempty"`
}

type FooterNavSection struct {
	Key     string       `json:"_key"`
	Heading string       `json:"heading,omitempty"`
	Links   []FooterLink `json:"links,omitempty"`
}

type FooterData struct {
	BrandDescription string             `json:"brandDescription,omitempty"`
	NavSections      []FooterNavSection `json:"navSections,omitempty"`
	CopyrightText    string             `json:"copyrightText,omitempty"`
}

// PageData is the aggregate fetched in one round trip. A nil field means the
// document is unset (or the fetch failed).
type PageData struct {
	SiteSettings *SiteSettingsData `json:"siteSettings"`
	Navigation   *NavigationData   `json:"navigation"`
	Hero         *HeroData         `json:"hero"`
	Proof        *ProofData        `json:"proof"`
	Problems     *ProblemsData     `json:"problems"`
	Solution     *SolutionData     `json:"solution"`
	Process      *ProcessData      `json:"process"`
	About        *AboutData        `json:"about"`
	Speaking     *SpeakingData     `json:"speaking"`
	Book         *BookData         `json:"book"`
	Podcast      *PodcastData      `json:"podcast"`
	Contact      *ContactData      `json:"contact"`
	Footer       *FooterData       `json:"footer"`
}
