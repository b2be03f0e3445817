package landing

import (
	"github.com/akeren/bizguard-leads/internal/views"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

const (
	waitlistPath  = "/waitlist"
	subscribePath = "/subscribe"
)

func Page(content *Content) g.Node {
	return views.Layout(
		views.PageConfig{},
		hero(content.Hero),
		howItWorks(content.Stages),
		features(content.Features),
		approach(content.Phases),
		faqs(content.FAQs),
		invitation(content.Invitation),
	)
}

func leadLinks() g.Node {
	return html.Div(
		html.A(html.Href(waitlistPath), g.Text("Join Our Exclusive Waitlist")),
		g.Text(" "),
		html.A(html.Href(subscribePath), g.Text("Subscribe for Updates")),
	)
}

func hero(h Hero) g.Node {
	return html.Section(
		html.ID("home"),
		html.H1(g.Text(h.Headline)),
		html.P(g.Text(h.Tagline)),
		leadLinks(),
		html.P(html.Strong(g.Text("Tip:")), g.Text(" "+h.Tip)),
	)
}

func howItWorks(stages []Stage) g.Node {
	return html.Section(
		html.ID("how-it-works"),
		html.H2(g.Text("How BizGuard AI Works")),
		html.P(g.Text("Our powerful AI learns your business processes and executes tasks with precision")),
		g.Group(g.Map(stages, func(stage Stage) g.Node {
			return html.Article(
				html.H3(g.Text(stage.Title)),
				html.P(g.Text(stage.Intro)),
				html.Ul(g.Group(g.Map(stage.Steps, func(step string) g.Node {
					return html.Li(g.Text(step))
				}))),
				html.P(html.Strong(g.Text("Outcome:")), g.Text(" "+stage.Outcome)),
			)
		})),
	)
}

func features(items []Feature) g.Node {
	return html.Section(
		html.ID("features"),
		html.H2(g.Text("Key Features & Benefits")),
		html.P(g.Text("BizGuard AI brings powerful features to streamline your accounting processes")),
		g.Group(g.Map(items, func(f Feature) g.Node {
			return html.Article(
				html.H3(g.Text(f.Title)),
				html.P(g.Text(f.Description)),
			)
		})),
	)
}

func approach(phases []Phase) g.Node {
	return html.Section(
		html.ID("approach"),
		html.H2(g.Text("Our Three-Phase Approach")),
		html.P(g.Text("BizGuard AI evolves with your business through three flexible phases")),
		html.Ol(g.Group(g.Map(phases, func(p Phase) g.Node {
			return html.Li(
				html.H3(g.Text(p.Title)),
				html.P(g.Text(p.Description)),
			)
		}))),
	)
}

func faqs(items []FAQ) g.Node {
	return html.Section(
		html.ID("faq"),
		html.H2(g.Text("Frequently Asked Questions")),
		g.Group(g.Map(items, func(f FAQ) g.Node {
			return html.Details(
				html.Summary(g.Text(f.Question)),
				html.P(g.Text(f.Answer)),
			)
		})),
	)
}

func invitation(cta CallToAction) g.Node {
	return html.Section(
		html.ID("cta"),
		html.H2(g.Text(cta.Headline)),
		html.P(g.Text(cta.Body)),
		leadLinks(),
	)
}
