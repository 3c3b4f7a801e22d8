package render

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/hutchinsdata/site/internal/content"
	"github.com/hutchinsdata/site/internal/mediaurl"
)

// Default copy used when a document or field is unset.
const (
	DefaultSiteTitle   = "Hutchins Data Strategy"
	DefaultDescription = "I help healthcare executives adopt AI and analytics without losing institutional trust."
	DefaultAuthor      = "Christopher Hutchins"
	DefaultLogo        = "/img/logo-full.png"
	DefaultFavicon     = "/img/favicon.png"
)

type Link struct {
	Text     string
	Href     string
	External bool
}

type Picture struct {
	Src string
	Alt string
}

// Card is one entry of a keyed list (problem, outcome, step, topic).
type Card struct {
	Key     string
	Number  string
	Heading string
	Body    template.HTML
	Detail  template.HTML
}

type Meta struct {
	Title              string
	Description        string
	Keywords           []string
	Author             string
	TwitterHandle      string
	OGImage            string
	OGImageAlt         string
	Favicon            string
	GoogleVerification string
	CanonicalURL       string
}

type NavView struct {
	Title string
	Logo  string
	Links []Link
	Cta   Link
}

type HeroView struct {
	Eyebrow    string
	Headline   string
	Body       template.HTML
	Primary    Link
	Secondary  Link
	BadgeQuote string
	CtaSubtext string
	Stats      []content.Stat
	Image      Picture
}

// Placeholder is set when the section has nothing to show; templates render
// it instead of the section body.
type ProofView struct {
	Placeholder string
	Items       []string
	// Ticker is Items twice over, for a seamless scrolling strip.
	Ticker []string
}

type ProblemsView struct {
	Placeholder string
	Eyebrow     string
	Heading     string
	Problems    []Card
	Pullquote   string
}

type SolutionView struct {
	Placeholder string
	Eyebrow     string
	Heading     string
	Intro       template.HTML
	Outcomes    []Card
}

type ProcessView struct {
	Placeholder string
	Eyebrow     string
	Heading     string
	Steps       []Card
	Cta         Link
	CtaSubtext  string
}

type AboutView struct {
	Placeholder string
	Eyebrow     string
	Name        string
	Title       string
	Bio         []template.HTML
	Portrait    Picture
	Quote       string
	Credentials []string
	Stats       []content.Stat
	Primary     Link
	Secondary   Link
}

type SpeakingView struct {
	Placeholder string
	Eyebrow     string
	Heading     string
	Tagline     string
	Photo       Picture
	Topics      []Card
	CtaHeading  string
	CtaBody     string
	CtaButton   Link
}

type BookView struct {
	Placeholder string
	Eyebrow     string
	Title       string
	Subtitle    string
	Description template.HTML
	Cover       Picture
	Cta         Link
}

type PodcastView struct {
	Placeholder string
	Eyebrow     string
	Heading     string
	Description template.HTML
	Episode     *content.Episode
	Platforms   []Link
}

type FormFieldView struct {
	Key      string
	Label    string
	Name     string
	Type     string
	Required bool
}

type BookingView struct {
	Label   string
	Button  Link
	Subtext string
}

type ContactView struct {
	Eyebrow        string
	Heading        string
	Body           template.HTML
	Booking        BookingView
	Email          string
	Fields         []FormFieldView
	SuccessHeading string
	SuccessBody    string
	Socials        []Link
}

type FooterNavView struct {
	Heading string
	Links   []Link
}

type FooterView struct {
	Title            string
	Logo             string
	BrandDescription template.HTML
	NavSections      []FooterNavView
	Copyright        string
}

// View is everything the page template needs, with fallbacks applied.
type View struct {
	Meta     Meta
	Nav      NavView
	Hero     HeroView
	Proof    ProofView
	Problems ProblemsView
	Solution SolutionView
	Process  ProcessView
	About    AboutView
	Speaking SpeakingView
	Book     BookView
	Podcast  PodcastView
	Contact  ContactView
	Footer   FooterView
	Preview  bool
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func placeholder(section string) string {
	return section + " section - No content available"
}

func (r *Renderer) picture(img *content.Image, o mediaurl.Options, fallback, alt string) Picture {
	p := Picture{Src: r.images.Or(img, o, fallback), Alt: alt}
	if img != nil && img.Alt != "" {
		p.Alt = img.Alt
	}
	return p
}

func (r *Renderer) meta(s *content.SiteSettingsData) Meta {
	if s == nil {
		s = &content.SiteSettingsData{}
	}
	m := Meta{
		Title:              or(s.SiteTitle, DefaultSiteTitle),
		Description:        or(s.SiteDescription, DefaultDescription),
		Keywords:           s.Keywords,
		Author:             s.Author,
		TwitterHandle:      s.TwitterHandle,
		Favicon:            r.images.Or(s.Favicon, mediaurl.Options{Width: 64, Height: 64}, DefaultFavicon),
		GoogleVerification: r.opts.GoogleVerification,
		CanonicalURL:       r.opts.SiteURL,
	}
	m.OGImage = r.images.Or(s.OGImage, mediaurl.Options{Width: 1200, Height: 630}, "")
	if m.OGImage != "" {
		m.OGImageAlt = m.Title
		if s.OGImage.Alt != "" {
			m.OGImageAlt = s.OGImage.Alt
		}
	}
	return m
}

func nav(d *content.NavigationData, s *content.SiteSettingsData) NavView {
	if d == nil {
		d = &content.NavigationData{}
	}
	if s == nil {
		s = &content.SiteSettingsData{}
	}
	v := NavView{
		Title: or(s.SiteTitle, DefaultSiteTitle),
		Logo:  DefaultLogo,
		Links: []Link{},
		Cta:   Link{Text: or(d.CtaText, "Book a call"), Href: or(d.CtaLink, or(s.CalendlyURL, "#"))},
	}
	for _, l := range d.Links {
		v.Links = append(v.Links, Link{Text: l.Label, Href: l.Href})
	}
	return v
}

func cta(c *content.Cta) content.Cta {
	if c == nil {
		return content.Cta{}
	}
	return *c
}

func (r *Renderer) hero(d *content.HeroData) HeroView {
	if d == nil {
		d = &content.HeroData{}
	}
	primary, secondary := cta(d.PrimaryCta), cta(d.SecondaryCta)
	return HeroView{
		Eyebrow:    or(d.Eyebrow, "Healthcare AI & Data Strategy"),
		Headline:   or(d.Headline, "Adopt AI and analytics without losing institutional trust."),
		Body:       r.markdown(d.Body),
		Primary:    Link{Text: or(primary.Text, "Book a call"), Href: or(primary.URL, "#")},
		Secondary:  Link{Text: or(secondary.Text, "Learn more"), Href: or(secondary.Href, "#about")},
		BadgeQuote: or(d.BadgeQuote, "Decision integrity, not decision theater."),
		CtaSubtext: d.CtaSubtext,
		Stats:      d.Stats,
		Image: r.picture(d.HeroImage, mediaurl.Options{Width: 1600, Quality: 90, Auto: "format"},
			"/img/chris-hero.jpg", DefaultAuthor),
	}
}

func proof(d *content.ProofData) ProofView {
	if d == nil || len(d.Items) == 0 {
		return ProofView{Placeholder: "Proof section - No items available"}
	}
	ticker := make([]string, 0, 2*len(d.Items))
	ticker = append(append(ticker, d.Items...), d.Items...)
	return ProofView{Items: d.Items, Ticker: ticker}
}

func (r *Renderer) problems(d *content.ProblemsData) ProblemsView {
	if d == nil || len(d.Problems) == 0 {
		return ProblemsView{Placeholder: placeholder("Problems")}
	}
	v := ProblemsView{Eyebrow: or(d.Eyebrow, "The Problem"), Heading: d.Heading, Pullquote: d.Pullquote}
	for _, p := range d.Problems {
		v.Problems = append(v.Problems, Card{Key: p.Key, Heading: p.Heading, Body: r.markdown(p.Body)})
	}
	return v
}

func (r *Renderer) solution(d *content.SolutionData) SolutionView {
	if d == nil || len(d.Outcomes) == 0 {
		return SolutionView{Placeholder: placeholder("Solution")}
	}
	v := SolutionView{Eyebrow: or(d.Eyebrow, "The Solution"), Heading: d.Heading, Intro: r.markdown(d.Intro)}
	for _, o := range d.Outcomes {
		v.Outcomes = append(v.Outcomes, Card{Key: o.Key, Number: o.Number, Heading: o.Heading, Body: r.markdown(o.Body)})
	}
	return v
}

func (r *Renderer) process(d *content.ProcessData, s *content.SiteSettingsData) ProcessView {
	if d == nil || len(d.Steps) == 0 {
		return ProcessView{Placeholder: placeholder("Process")}
	}
	calendly := ""
	if s != nil {
		calendly = s.CalendlyURL
	}
	c := cta(d.Cta)
	v := ProcessView{
		Eyebrow:    or(d.Eyebrow, "How We Work"),
		Heading:    or(d.Heading, "How We Work Together"),
		Cta:        Link{Text: or(c.Text, "Book a call"), Href: or(c.URL, or(calendly, "#"))},
		CtaSubtext: d.CtaSubtext,
	}
	for _, st := range d.Steps {
		v.Steps = append(v.Steps, Card{Key: st.Key, Number: st.Number, Heading: st.Heading,
			Body: r.markdown(st.Body), Detail: r.markdown(st.Detail)})
	}
	return v
}

func (r *Renderer) about(d *content.AboutData) AboutView {
	if d == nil || len(d.Bio) == 0 {
		return AboutView{Placeholder: placeholder("About")}
	}
	primary, secondary := cta(d.PrimaryCta), cta(d.SecondaryCta)
	v := AboutView{
		Eyebrow:     or(d.Eyebrow, "The Guide"),
		Name:        or(d.Name, DefaultAuthor),
		Title:       d.Title,
		Portrait:    r.picture(d.Portrait, mediaurl.Options{Width: 900, Quality: 90, Auto: "format"}, "/img/chris-about.jpg", DefaultAuthor),
		Quote:       d.Quote,
		Credentials: d.Credentials,
		Stats:       d.Stats,
		Primary:     Link{Text: or(primary.Text, "Work with Chris"), Href: or(primary.Href, "#contact")},
		Secondary:   Link{Text: or(secondary.Text, "Speaking topics"), Href: or(secondary.Href, "#speaking")},
	}
	for _, p := range d.Bio {
		v.Bio = append(v.Bio, r.markdown(p))
	}
	return v
}

func (r *Renderer) speaking(d *content.SpeakingData) SpeakingView {
	if d == nil || len(d.Topics) == 0 {
		return SpeakingView{Placeholder: placeholder("Speaking")}
	}
	v := SpeakingView{
		Eyebrow:    or(d.Eyebrow, "Speaking"),
		Heading:    or(d.Heading, "Speaking"),
		Tagline:    d.Tagline,
		Photo:      r.picture(d.Photo, mediaurl.Options{Width: 1800, Quality: 85, Auto: "format"}, "/img/chris-speaking.png", "Christopher Hutchins speaking"),
		CtaHeading: or(d.CtaHeading, "Topics tailored to your audience and format."),
		CtaBody:    or(d.CtaBody, "Available for keynotes, executive summits, board retreats, and leadership workshops."),
		CtaButton:  Link{Text: or(d.CtaButtonText, "Inquire"), Href: or(d.CtaButtonHref, "#contact")},
	}
	for _, t := range d.Topics {
		v.Topics = append(v.Topics, Card{Key: t.Key, Number: t.Number, Heading: t.Heading, Body: r.markdown(t.Body)})
	}
	return v
}

func (r *Renderer) book(d *content.BookData) BookView {
	if d == nil || d.BookTitle == "" {
		return BookView{Placeholder: placeholder("Book")}
	}
	return BookView{
		Eyebrow:     or(d.Eyebrow, "Published Work"),
		Title:       or(d.BookTitle, "The Accountable System"),
		Subtitle:    d.Subtitle,
		Description: r.markdown(d.Description),
		Cover:       r.picture(d.CoverImage, mediaurl.Options{Width: 800, Quality: 90}, "", d.BookTitle),
		Cta:         Link{Text: or(d.CtaText, "Get the Book"), Href: or(d.PurchaseURL, "#")},
	}
}

func (r *Renderer) podcast(d *content.PodcastData) PodcastView {
	if d == nil || d.Heading == "" {
		return PodcastView{Placeholder: placeholder("Podcast")}
	}
	v := PodcastView{
		Eyebrow:     or(d.Eyebrow, "Podcast"),
		Heading:     or(d.Heading, "Governing the Machine"),
		Description: r.markdown(d.Description),
		Episode:     d.LatestEpisode,
		Platforms:   []Link{},
	}
	for _, p := range d.Platforms {
		v.Platforms = append(v.Platforms, Link{Text: p.Name, Href: p.URL, External: true})
	}
	return v
}

// defaultFormFields is used when the contact document has no field list at
// all. An explicitly empty list renders no fields.
var defaultFormFields = []FormFieldView{
	{Key: "1", Label: "Name", Name: "name", Type: content.FieldText},
	{Key: "2", Label: "Email", Name: "email", Type: content.FieldEmail},
	{Key: "3", Label: "What decision are you trying to make?", Name: "message", Type: content.FieldTextarea},
}

func (r *Renderer) contact(d *content.ContactData, s *content.SiteSettingsData) ContactView {
	if d == nil {
		d = &content.ContactData{}
	}
	if s == nil {
		s = &content.SiteSettingsData{}
	}
	booking := content.BookingCard{}
	if d.BookingCard != nil {
		booking = *d.BookingCard
	}
	v := ContactView{
		Eyebrow: or(d.Eyebrow, "Get in Touch"),
		Heading: d.Heading,
		Body:    r.markdown(d.Body),
		Booking: BookingView{
			Label:   or(booking.Label, "Prefer to book directly?"),
			Button:  Link{Text: or(booking.ButtonText, "Schedule a call"), Href: or(booking.ButtonURL, s.CalendlyURL), External: true},
			Subtext: booking.Subtext,
		},
		Email:          or(d.Email, s.Email),
		SuccessHeading: or(d.SuccessHeading, "Message received."),
		SuccessBody:    d.SuccessBody,
		Socials:        []Link{},
	}
	if d.FormFields == nil {
		v.Fields = defaultFormFields
	} else {
		v.Fields = []FormFieldView{}
		for _, f := range d.FormFields {
			ft := f.Type
			if ft != content.FieldEmail && ft != content.FieldTextarea {
				ft = content.FieldText
			}
			v.Fields = append(v.Fields, FormFieldView{Key: f.Key, Label: f.Label, Name: f.Name, Type: ft,
				Required: f.Required != nil && *f.Required})
		}
	}
	for _, l := range s.SocialLinks {
		v.Socials = append(v.Socials, Link{Text: l.Platform, Href: l.URL, External: true})
	}
	return v
}

func (r *Renderer) footer(d *content.FooterData, s *content.SiteSettingsData) FooterView {
	if d == nil {
		d = &content.FooterData{}
	}
	title := DefaultSiteTitle
	if s != nil {
		title = or(s.SiteTitle, title)
	}
	year := strconv.Itoa(r.now().Year())
	copyright := "© " + year + " " + DefaultAuthor + ". All rights reserved."
	if d.CopyrightText != "" {
		copyright = strings.Replace(d.CopyrightText, "{year}", year, 1)
	}
	v := FooterView{Title: title, Logo: DefaultLogo, BrandDescription: r.markdown(d.BrandDescription), Copyright: copyright}
	for _, sec := range d.NavSections {
		nv := FooterNavView{Heading: sec.Heading}
		for _, l := range sec.Links {
			nv.Links = append(nv.Links, Link{Text: l.Label, Href: l.Href, External: l.External})
		}
		v.NavSections = append(v.NavSections, nv)
	}
	return v
}

// Build applies every fallback and returns the page view. page may be nil.
func (r *Renderer) Build(page *content.PageData) *View {
	if page == nil {
		page = &content.PageData{}
	}
	s := page.SiteSettings
	return &View{
		Meta:     r.meta(s),
		Nav:      nav(page.Navigation, s),
		Hero:     r.hero(page.Hero),
		Proof:    proof(page.Proof),
		Problems: r.problems(page.Problems),
		Solution: r.solution(page.Solution),
		Process:  r.process(page.Process, s),
		About:    r.about(page.About),
		Speaking: r.speaking(page.Speaking),
		Book:     r.book(page.Book),
		Podcast:  r.podcast(page.Podcast),
		Contact:  r.contact(page.Contact, s),
		Footer:   r.footer(page.Footer, s),
	}
}
