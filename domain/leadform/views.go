package leadform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/akeren/bizguard-leads/internal/views"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

var stepTitles = map[Step]string{
	StepAboutYou: "Tell us about yourself",
	StepBusiness: "About your business",
	StepFinish:   "Almost done",
}

var fieldLabels = map[string]string{
	"name":          "Your Name",
	"ageGroup":      "Age Group",
	"profession":    "Profession",
	"businessName":  "Business Name",
	"employeeRange": "Number of Employees",
}

type wizardView struct {
	Wizard  *Wizard
	Missing []string
	Notice  string
}

func wizardPage(view wizardView) g.Node {
	return views.Layout(
		views.PageConfig{Title: "Join the waitlist"},
		html.H1(g.Text("Join the BizGuard AI waitlist")),
		g.If(view.Wizard.Submitted(), thankYou()),
		g.If(!view.Wizard.Submitted(), wizardForm(view)),
	)
}

func thankYou() g.Node {
	return html.Div(
		html.ID("thank-you"),
		html.H2(g.Text("Thank You!")),
		html.P(g.Text("We've received your information and will be in touch soon.")),
		html.A(html.Href("/"), g.Text("Back to home")),
	)
}

func wizardForm(view wizardView) g.Node {
	w := view.Wizard
	draft := w.Draft()

	var fields g.Node
	switch w.Step() {
	case StepAboutYou:
		fields = aboutYouFields(draft)
	case StepBusiness:
		fields = businessFields(draft)
	default:
		fields = finishFields(draft)
	}

	return html.Div(
		stepIndicator(w.Step()),
		views.Notice("error", view.Notice),
		g.If(len(view.Missing) > 0, missingFieldsNotice(view.Missing)),
		html.FormEl(
			html.ID("waitlist-form"),
			html.Method("post"),
			html.Action(primaryAction(w.Step())),
			html.H2(g.Text(stepTitles[w.Step()])),
			fields,
			html.Div(
				g.If(w.Step() > FirstStep, html.Button(
					html.Type("submit"),
					g.Attr("formaction", "/waitlist/back"),
					g.Attr("formnovalidate", ""),
					g.Text("Back"),
				)),
				html.Button(
					html.Type("submit"),
					g.If(w.Status() == StatusLoading, html.Disabled()),
					g.Text(primaryLabel(w.Step())),
				),
			),
		),
		html.FormEl(
			html.Method("post"),
			html.Action("/waitlist/close"),
			html.Button(html.Type("submit"), g.Text("Close")),
		),
	)
}

func primaryAction(step Step) string {
	if step == LastStep {
		return "/waitlist/submit"
	}
	return "/waitlist/next"
}

func primaryLabel(step Step) string {
	if step == LastStep {
		return "Submit"
	}
	return "Next"
}

func stepIndicator(current Step) g.Node {
	steps := []Step{StepAboutYou, StepBusiness, StepFinish}

	return html.Ol(
		html.Class("steps"),
		g.Group(g.Map(steps, func(step Step) g.Node {
			state := "pending"
			if current >= step {
				state = "reached"
			}
			return html.Li(
				g.Attr("data-state", state),
				g.If(current == step, g.Attr("aria-current", "step")),
				g.Textf("Step %d", step),
			)
		})),
	)
}

func missingFieldsNotice(missing []string) g.Node {
	labels := make([]string, 0, len(missing))
	for _, field := range missing {
		if label, ok := fieldLabels[field]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, field)
		}
	}

	return views.Notice("error", "Please complete: "+strings.Join(labels, ", "))
}

func aboutYouFields(d Draft) g.Node {
	return g.Group([]g.Node{
		textField("name", fieldLabels["name"], "text", d.Name, "Enter your full name"),
		radioGroup("ageGroup", fieldLabels["ageGroup"], AgeGroups, d.AgeGroup),
		radioGroup("profession", "What best describes you?", ProfessionCategories, d.Profession),
		textField("customProfession", "Other profession", "text", d.CustomProfession, "Specify profession..."),
	})
}

func businessFields(d Draft) g.Node {
	return g.Group([]g.Node{
		textField("businessName", fieldLabels["businessName"], "text", d.BusinessName, "Enter your business name"),
		checkboxField("isBusinessOwner", "I am the business owner", d.IsBusinessOwner),
		radioGroup("employeeRange", fieldLabels["employeeRange"], EmployeeRanges, d.EmployeeRange),
		textAreaField("businessDescription", "Business Description", d.BusinessDescription, "Tell us about your business..."),
	})
}

func finishFields(d Draft) g.Node {
	return g.Group([]g.Node{
		textField("email", "Email Address", "email", d.Email, "you@company.com"),
		textField("phone", "Phone Number", "tel", d.Phone, "+234 800 000 0000"),
		checkboxGroup("currentAccounting", "Current Accounting Software", AccountingSoftware, d.CurrentAccounting),
		textField("customSoftware", "Other software", "text", d.CustomSoftware, "Other software..."),
		checkboxField("interestedInCustomization", "I'm interested in a customized solution for my business", d.InterestedInCustomization),
	})
}

func textField(name, label, inputType, value, placeholder string) g.Node {
	return html.Div(
		html.Label(g.Attr("for", name), g.Text(label)),
		html.Input(html.ID(name), html.Name(name), html.Type(inputType), html.Value(value), html.Placeholder(placeholder)),
	)
}

func textAreaField(name, label, value, placeholder string) g.Node {
	return html.Div(
		html.Label(g.Attr("for", name), g.Text(label)),
		html.Textarea(html.ID(name), html.Name(name), html.Placeholder(placeholder), g.Text(value)),
	)
}

func checkboxField(name, label string, checked bool) g.Node {
	return html.Div(
		views.HiddenFalse(name),
		html.Label(
			html.Input(html.Type("checkbox"), html.Name(name), html.Value("true"), g.If(checked, html.Checked())),
			g.Text(label),
		),
	)
}

func radioGroup(name, legend string, options []Option, selected string) g.Node {
	return html.FieldSet(
		html.Legend(g.Text(legend)),
		g.Group(g.Map(options, func(option Option) g.Node {
			id := fmt.Sprintf("%s-%s", name, option.ID)
			return html.Div(
				html.Input(html.ID(id), html.Type("radio"), html.Name(name), html.Value(option.ID), g.If(option.ID == selected, html.Checked())),
				html.Label(g.Attr("for", id), g.Text(option.Label)),
			)
		})),
	)
}

func checkboxGroup(name, legend string, options []Option, selected []string) g.Node {
	return html.FieldSet(
		html.Legend(g.Text(legend)),
		html.Input(html.Type("hidden"), html.Name(name), html.Value("")),
		g.Group(g.Map(options, func(option Option) g.Node {
			id := fmt.Sprintf("%s-%s", name, option.ID)
			return html.Div(
				html.Input(html.ID(id), html.Type("checkbox"), html.Name(name), html.Value(option.ID), g.If(slices.Contains(selected, option.ID), html.Checked())),
				html.Label(g.Attr("for", id), g.Text(option.Label)),
			)
		})),
	)
}

type subscribeView struct {
	Status Status
	Email  string
	Errors []apperrors.ValidationErrorResponse
}

func subscribePage(view subscribeView) g.Node {
	var notice g.Node
	switch view.Status {
	case StatusSuccess:
		notice = views.Notice("success", "Thanks for subscribing! We'll keep you posted.")
	case StatusError:
		notice = views.Notice("error", "Subscription failed. Please try again.")
	}

	return views.Layout(
		views.PageConfig{Title: "Stay updated"},
		html.H1(g.Text("Stay updated")),
		html.P(g.Text("Get the latest news about BizGuard AI straight to your inbox.")),
		notice,
		g.Group(g.Map(view.Errors, func(e apperrors.ValidationErrorResponse) g.Node {
			return views.Notice("error", fmt.Sprintf("%s: %s", e.Field, e.Message))
		})),
		g.If(view.Status != StatusSuccess, html.FormEl(
			html.ID("subscribe-form"),
			html.Method("post"),
			html.Action("/subscribe"),
			textField("email", "Email Address", "email", view.Email, "Enter your email"),
			html.Button(html.Type("submit"), g.Text("Subscribe")),
		)),
	)
}
