package content

// Images returns every image field of the page that references an asset, in
// page order.
func (p *PageData) Images() []*Image {
	if p == nil {
		return nil
	}
	var all []*Image
	if s := p.SiteSettings; s != nil {
		all = append(all, s.Logo, s.Favicon, s.OGImage)
	}
	if p.Hero != nil {
		all = append(all, p.Hero.HeroImage)
	}
	if p.About != nil {
		all = append(all, p.About.Portrait)
	}
	if p.Speaking != nil {
		all = append(all, p.Speaking.Photo)
	}
	if p.Book != nil {
		all = append(all, p.Book.CoverImage)
	}
	out := all[:0]
	for _, img := range all {
		if img.HasAsset() {
			out = append(out, img)
		}
	}
	return out
}

// AssetIDs returns the distinct asset ids referenced by the page.
func (p *PageData) AssetIDs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, img := range p.Images() {
		id := img.AssetID()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
