package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	siteName        = "BizGuard AI"
	siteDescription = "AI-powered financial guardianship for growing businesses."
)

type PageConfig struct {
	Title       string
	Description string
}

// Layout wraps content in a bare HTML document. Pages carry no styling.
func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = siteName
	} else {
		config.Title = config.Title + " | " + siteName
	}

	if config.Description == "" {
		config.Description = siteDescription
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
			),
			Body(
				Main(g.Group(content)),
			),
		),
	})
}

// Notice renders a status message. kind is "error" or "success".
func Notice(kind, message string) g.Node {
	if message == "" {
		return nil
	}

	return P(
		Class("notice notice-"+kind),
		g.Attr("role", "status"),
		g.Text(message),
	)
}

// HiddenFalse precedes a checkbox so an unchecked box still posts its name.
func HiddenFalse(name string) g.Node {
	return Input(Type("hidden"), Name(name), Value("false"))
}
