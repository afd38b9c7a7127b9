// internal/services/og_service.go
package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/lojinha/lojinha-backend/internal/themes"
)

// OGService renders the social preview served to link-unfurling crawlers: an
// HTML shell carrying Open Graph meta tags plus an SVG card drawn with the
// storefront's theme tokens.
type OGService struct {
	storefronts *StorefrontService
	frontendURL string
}

func NewOGService(storefronts *StorefrontService, frontendURL string) *OGService {
	return &OGService{
		storefronts: storefronts,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// PreviewHTML builds the crawler-facing page for a username. The page is not
// meant for humans; browsers hitting it are redirected to the real profile.
func (s *OGService) PreviewHTML(ctx context.Context, username string) (string, error) {
	storefront, err := s.storefronts.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	title := storefront.ProfileName
	if title == "" {
		title = "@" + storefront.Username
	}
	description := storefront.ProfileBio
	if description == "" {
		description = fmt.Sprintf("Confira os produtos de @%s", storefront.Username)
	}

	profileURL := fmt.Sprintf("%s/%s", s.frontendURL, storefront.Username)
	imageURL := fmt.Sprintf("%s/og/%s/card.svg", s.frontendURL, storefront.Username)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	writeMeta(&b, "og:type", "profile")
	writeMeta(&b, "og:title", title)
	writeMeta(&b, "og:description", description)
	writeMeta(&b, "og:url", profileURL)
	writeMeta(&b, "og:image", imageURL)
	writeMeta(&b, "og:image:width", "1200")
	writeMeta(&b, "og:image:height", "630")
	writeMeta(&b, "twitter:card", "summary_large_image")
	writeMeta(&b, "twitter:title", title)
	writeMeta(&b, "twitter:description", description)
	writeMeta(&b, "twitter:image", imageURL)
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<meta http-equiv=\"refresh\" content=\"0;url=%s\">\n", html.EscapeString(profileURL))
	b.WriteString("</head>\n<body></body>\n</html>\n")

	return b.String(), nil
}

// CardSVG draws the 1200x630 share image for a username.
func (s *OGService) CardSVG(ctx context.Context, username string) (string, error) {
	storefront, err := s.storefronts.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	theme := themes.Get(storefront.Theme)
	name := storefront.ProfileName
	if name == "" {
		name = "@" + storefront.Username
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="630" viewBox="0 0 1200 630">`)
	b.WriteString("\n")
	writeBackground(&b, theme)
	fmt.Fprintf(&b, `  <rect x="80" y="100" width="1040" height="430" rx="32" fill="%s" stroke="%s"/>`+"\n",
		svgColor(theme.CardBackground), svgColor(theme.CardBorder))
	fmt.Fprintf(&b, `  <text x="600" y="280" text-anchor="middle" font-family="sans-serif" font-size="72" font-weight="bold" fill="%s">%s</text>`+"\n",
		svgColor(theme.TextPrimary), html.EscapeString(truncateRunes(name, 24)))
	fmt.Fprintf(&b, `  <text x="600" y="360" text-anchor="middle" font-family="sans-serif" font-size="36" fill="%s">%s</text>`+"\n",
		svgColor(theme.TextSecondary), html.EscapeString(truncateRunes(storefront.ProfileBio, 60)))
	fmt.Fprintf(&b, `  <text x="600" y="470" text-anchor="middle" font-family="sans-serif" font-size="28" fill="%s">%s</text>`+"\n",
		svgColor(theme.TextMuted), html.EscapeString(productTagline(len(storefront.Products), storefront.Username)))
	b.WriteString("</svg>\n")

	return b.String(), nil
}

func writeMeta(b *strings.Builder, property, content string) {
	fmt.Fprintf(b, "<meta property=\"%s\" content=\"%s\">\n",
		html.EscapeString(property), html.EscapeString(content))
}

// writeBackground maps a CSS background token onto SVG. Gradients become a
// two-stop linearGradient; anything else is used as a flat fill.
func writeBackground(b *strings.Builder, theme themes.Theme) {
	stops := gradientStops(theme.Background)
	if len(stops) >= 2 {
		b.WriteString("  <defs>\n    <linearGradient id=\"bg\" x1=\"0\" y1=\"0\" x2=\"1\" y2=\"1\">\n")
		fmt.Fprintf(b, `      <stop offset="0%%" stop-color="%s"/>`+"\n", stops[0])
		fmt.Fprintf(b, `      <stop offset="100%%" stop-color="%s"/>`+"\n", stops[len(stops)-1])
		b.WriteString("    </linearGradient>\n  </defs>\n")
		b.WriteString(`  <rect width="1200" height="630" fill="url(#bg)"/>` + "\n")
		return
	}
	fmt.Fprintf(b, `  <rect width="1200" height="630" fill="%s"/>`+"\n", svgColor(theme.Background))
}

// gradientStops extracts hex colors from a linear-gradient() value.
func gradientStops(background string) []string {
	if !strings.HasPrefix(background, "linear-gradient(") {
		return nil
	}
	var stops []string
	for _, part := range strings.Split(background, ",") {
		part = strings.TrimSpace(strings.TrimSuffix(part, ")"))
		if i := strings.Index(part, "#"); i >= 0 {
			color := part[i:]
			if j := strings.IndexByte(color, ' '); j > 0 {
				color = color[:j]
			}
			stops = append(stops, color)
		}
	}
	return stops
}

// svgColor rejects CSS functions SVG fills cannot evaluate.
// svgColor reduces a CSS color token to something SVG accepts. Border
// shorthands like "1px solid #e2e8f0" keep only their color component; CSS
// functions other than rgb()/rgba() fall back to white.
func svgColor(value string) string {
	if strings.Contains(value, "gradient(") {
		return "#ffffff"
	}
	if fields := strings.Fields(value); len(fields) > 1 {
		value = "#ffffff"
		for i := len(fields) - 1; i >= 0; i-- {
			if strings.HasPrefix(fields[i], "#") || strings.HasPrefix(fields[i], "rgb") {
				value = fields[i]
				break
			}
		}
	}
	if strings.Contains(value, "(") && !strings.HasPrefix(value, "rgb") {
		return "#ffffff"
	}
	return value
}

func productTagline(count int, username string) string {
	switch count {
	case 0:
		return "@" + username
	case 1:
		return fmt.Sprintf("1 produto · @%s", username)
	default:
		return fmt.Sprintf("%d produtos · @%s", count, username)
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
