// =======================
// session/banner.go
// =======================

package session

import (
	"fmt"
	"io"
	"text/template"
)

const (
	Title   = "Welcome to Joinbloque 🚀"
	TagLine = "The smartest payment"
	JoinUs  = "Join us:"
	Email   = "hi@joinbloque.com"
)

const welcomeSource = `
   {{.Title}}
{{.TagLine}} {{.Feature}}

{{.JoinUs}} {{.Email}}

      We Love Go
        🧱 ❤️ 🐹
`

var welcome = template.Must(template.New("welcome").Parse(welcomeSource))

type bannerData struct {
	Title, TagLine, Feature, JoinUs, Email string
}

// Feature is the banner label shown for the nth feature slot.
func Feature(n int) string {
	return Features[n%len(Features)]
}

// FeatureAt is the label on screen at step. It changes after every step
// ending in 99.
func FeatureAt(step int) string {
	return Feature(step / FeatureEvery)
}

// RenderBanner writes the welcome banner with the given feature label.
func RenderBanner(w io.Writer, feature string, color bool) error {
	paint := func(st Style, s string) string {
		if !color {
			return s
		}
		return st.Paint(s)
	}

	data := bannerData{
		Title:   paint(TitleStyle, Title),
		TagLine: paint(TagStyle, TagLine),
		Feature: paint(FeatureStyle, feature),
		JoinUs:  paint(JoinStyle, JoinUs),
		Email:   paint(EmailStyle, Email),
	}
	if err := welcome.Execute(w, data); err != nil {
		return fmt.Errorf("render banner: %w", err)
	}
	return nil
}
