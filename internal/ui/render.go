package ui

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/dmitrijs2005/adboard/internal/models"
)

type card struct {
	Category    string
	Title       string
	Description string
	Price       string
	ImageURL    template.URL
	Fallback    string
}

var adsTemplate = template.Must(template.New("ads").Parse(`
{{- if not .Cards -}}
<div class="empty-state">
  <h3>No Ads Published Yet</h3>
  <p>Be the first to publish an ad!</p>
</div>
{{- else -}}
{{- range .Cards}}
<div class="card">
  <img src="{{.ImageURL}}" alt="{{.Title}}" onerror="this.onerror=null;this.src={{.Fallback}}">
  <div class="card-body">
    <span class="category">{{.Category}}</span>
    <h3>{{.Title}}</h3>
    <p class="description">{{.Description}}</p>
    <p class="price">${{.Price}}</p>
  </div>
</div>
{{- end}}
{{- end}}
`))

// RenderAds writes a card per ad, or the empty state when there are none.
// Ads without a usable image URL show placeholder.
func RenderAds(w io.Writer, ads []models.Ad, placeholder string) error {
	cards := make([]card, 0, len(ads))
	for _, ad := range ads {
		img := ad.ImageURL
		if !safeImageURL(img) {
			img = placeholder
		}
		cards = append(cards, card{
			Category:    ad.Category,
			Title:       ad.Title,
			Description: ad.Description,
			Price:       models.DisplayPrice(ad.Price),
			ImageURL:    template.URL(img),
			Fallback:    placeholder,
		})
	}
	return adsTemplate.Execute(w, struct{ Cards []card }{cards})
}

// RenderAdsHTML is RenderAds into a string.
func RenderAdsHTML(ads []models.Ad, placeholder string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := RenderAds(&buf, ads, placeholder); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// safeImageURL accepts http(s), root-relative and data:image URLs.
func safeImageURL(u string) bool {
	lower := strings.ToLower(strings.TrimSpace(u))
	switch {
	case lower == "":
		return false
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "/") && !strings.HasPrefix(lower, "//"):
		return true
	default:
		return false
	}
}
