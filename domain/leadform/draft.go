package leadform

import "slices"

// Draft is the in-progress waitlist application. It is never persisted on
// its own; Payload turns it into a submission body.
type Draft struct {
	Name                      string   `json:"name"`
	AgeGroup                  string   `json:"ageGroup"`
	Profession                string   `json:"profession"`
	CustomProfession          string   `json:"customProfession,omitempty"`
	IsBusinessOwner           bool     `json:"isBusinessOwner"`
	Phone                     string   `json:"phone"`
	BusinessName              string   `json:"businessName"`
	BusinessDescription       string   `json:"businessDescription"`
	EmployeeRange             string   `json:"employeeRange"`
	InterestedInCustomization bool     `json:"interestedInCustomization"`
	CurrentAccounting         []string `json:"currentAccounting"`
	CustomSoftware            string   `json:"customSoftware,omitempty"`
	Email                     string   `json:"email"`
	Company                   string   `json:"company"`
}

// DraftUpdate is a partial Draft. Nil fields are left untouched by Merge.
type DraftUpdate struct {
	Name                      *string
	AgeGroup                  *string
	Profession                *string
	CustomProfession          *string
	IsBusinessOwner           *bool
	Phone                     *string
	BusinessName              *string
	BusinessDescription       *string
	EmployeeRange             *string
	InterestedInCustomization *bool
	CurrentAccounting         *[]string
	CustomSoftware            *string
	Email                     *string
	Company                   *string
}

// Merge applies every non-nil field of u to a copy of d.
func (d Draft) Merge(u DraftUpdate) Draft {
	out := d.clone()

	setString(&out.Name, u.Name)
	setString(&out.AgeGroup, u.AgeGroup)
	setString(&out.Profession, u.Profession)
	setString(&out.CustomProfession, u.CustomProfession)
	setBool(&out.IsBusinessOwner, u.IsBusinessOwner)
	setString(&out.Phone, u.Phone)
	setString(&out.BusinessName, u.BusinessName)
	setString(&out.BusinessDescription, u.BusinessDescription)
	setString(&out.EmployeeRange, u.EmployeeRange)
	setBool(&out.InterestedInCustomization, u.InterestedInCustomization)
	if u.CurrentAccounting != nil {
		out.CurrentAccounting = slices.Clone(*u.CurrentAccounting)
	}
	setString(&out.CustomSoftware, u.CustomSoftware)
	setString(&out.Email, u.Email)
	setString(&out.Company, u.Company)

	return out
}

// Payload is the body posted to the submission sink. It always carries the
// explicit waitlist type.
func (d Draft) Payload() map[string]any {
	accounting := d.CurrentAccounting
	if accounting == nil {
		accounting = []string{}
	}

	payload := map[string]any{
		"type":                      "waitlist",
		"name":                      d.Name,
		"ageGroup":                  d.AgeGroup,
		"profession":                d.Profession,
		"isBusinessOwner":           d.IsBusinessOwner,
		"phone":                     d.Phone,
		"businessName":              d.BusinessName,
		"businessDescription":       d.BusinessDescription,
		"employeeRange":             d.EmployeeRange,
		"interestedInCustomization": d.InterestedInCustomization,
		"currentAccounting":         slices.Clone(accounting),
		"email":                     d.Email,
		"company":                   d.Company,
	}

	if d.CustomProfession != "" {
		payload["customProfession"] = d.CustomProfession
	}
	if d.CustomSoftware != "" {
		payload["customSoftware"] = d.CustomSoftware
	}

	return payload
}

func (d Draft) clone() Draft {
	d.CurrentAccounting = slices.Clone(d.CurrentAccounting)
	return d
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
