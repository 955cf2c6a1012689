// Package contact builds the contact card and mailto links for the contact page.
package contact

import (
	"net/url"
	"strings"
)

// DefaultSubject is used when a message has no subject.
const DefaultSubject = "Project inquiry"

// Message is what a visitor fills in on the contact form.
type Message struct {
	Name    string
	Subject string
	Body    string
}

// Link is a labelled external profile link.
type Link struct {
	Label string `toml:"label" json:"label"`
	URL   string `toml:"url" json:"url"`
}

// Profile is the contact card shown next to the form.
type Profile struct {
	Email    string `toml:"email" json:"email"`
	Location string `toml:"location" json:"location"`
	Links    []Link `toml:"links" json:"links"`
}

// Href returns a mailto link addressed to to. The subject falls back to
// [DefaultSubject] and the body is prefixed with the sender's name, or "-".
//
// Components are escaped the way browsers' encodeURIComponent does, so
// spaces become %20 rather than '+'.
func Href(to string, m Message) string {
	subject := m.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	name := m.Name
	if name == "" {
		name = "-"
	}
	body := "Name: " + name + "\n\n" + m.Body

	return "mailto:" + to + "?subject=" + EncodeComponent(subject) + "&body=" + EncodeComponent(body)
}

// componentUnescaper restores the marks encodeURIComponent leaves alone but
// url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent escapes s like JavaScript's encodeURIComponent.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
