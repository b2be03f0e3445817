package leadform

import (
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type aboutYouRequirements struct {
	Name       string `json:"name" validate:"required"`
	AgeGroup   string `json:"ageGroup" validate:"required"`
	Profession string `json:"profession" validate:"required"`
}

type businessRequirements struct {
	BusinessName  string `json:"businessName" validate:"required"`
	EmployeeRange string `json:"employeeRange" validate:"required"`
}

// requiredFieldsMissing lists, by JSON name, the fields of d that must be
// filled before leaving step.
func requiredFieldsMissing(step Step, d Draft) []string {
	var requirements any
	switch step {
	case StepAboutYou:
		requirements = &aboutYouRequirements{Name: d.Name, AgeGroup: d.AgeGroup, Profession: d.Profession}
	case StepBusiness:
		requirements = &businessRequirements{BusinessName: d.BusinessName, EmployeeRange: d.EmployeeRange}
	default:
		return nil
	}

	err := validate.Struct(requirements)
	if err == nil {
		return nil
	}

	violations := apperrors.FormatValidationErrors(err, requirements)
	fields := make([]string, 0, len(violations))
	for _, violation := range violations {
		fields = append(fields, violation.Field)
	}

	return fields
}
