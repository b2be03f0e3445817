package leadform

// Option is one selectable answer in the wizard.
type Option struct {
	ID    string
	Label string
}

const (
	ProfessionOther = "other"
	SoftwareOther   = "other"
	SoftwareNone    = "none"
)

var AgeGroups = []Option{
	{ID: "18-25", Label: "18-25 years"},
	{ID: "26-35", Label: "26-35 years"},
	{ID: "36-45", Label: "36-45 years"},
	{ID: "46-55", Label: "46-55 years"},
	{ID: "56+", Label: "56+ years"},
}

var ProfessionCategories = []Option{
	{ID: "accountant", Label: "Accountant/CPA"},
	{ID: "business", Label: "Business Executive"},
	{ID: "finance", Label: "Finance Professional"},
	{ID: "tech", Label: "Technology Professional"},
	{ID: "consultant", Label: "Consultant"},
	{ID: ProfessionOther, Label: "Other"},
}

var EmployeeRanges = []Option{
	{ID: "solo", Label: "Just Me"},
	{ID: "small", Label: "1-25"},
	{ID: "large", Label: "25-500"},
	{ID: "enterprise", Label: "500+"},
}

var AccountingSoftware = []Option{
	{ID: "quickbooks", Label: "QuickBooks"},
	{ID: "xero", Label: "Xero"},
	{ID: "sage", Label: "Sage"},
	{ID: "zoho", Label: "Zoho Books"},
	{ID: "tally", Label: "Tally"},
	{ID: "excel", Label: "Excel/Spreadsheets"},
	{ID: SoftwareOther, Label: "Other"},
	{ID: SoftwareNone, Label: "None"},
}

func hasOption(options []Option, id string) bool {
	for _, option := range options {
		if option.ID == id {
			return true
		}
	}
	return false
}
