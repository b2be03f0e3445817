package submission

import (
	"encoding/json"
	"strings"

	"github.com/akeren/bizguard-leads/internal/models"
	"github.com/akeren/bizguard-leads/pkg/constants"
)

type Category string

const (
	CategoryWaitlist     Category = models.CategoryWaitlist
	CategorySubscription Category = models.CategorySubscription
)

// Categories lists every category in a stable order.
var Categories = []Category{CategoryWaitlist, CategorySubscription}

const (
	typeField       = "type"
	professionField = "profession"
)

func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryWaitlist:
		return CategoryWaitlist, true
	case CategorySubscription:
		return CategorySubscription, true
	default:
		return "", false
	}
}

func (c Category) FileName() string {
	if c == CategoryWaitlist {
		return constants.WaitlistSubmissionsFile
	}
	return constants.SubscriptionsFile
}

func (c Category) String() string {
	return string(c)
}

// Classify routes a payload to a category. An explicit "type" discriminant
// wins; otherwise a non-empty "profession" means waitlist.
func Classify(payload map[string]any) Category {
	if raw, ok := payload[typeField].(string); ok {
		if category, valid := ParseCategory(raw); valid {
			return category
		}
	}

	if isPresent(payload[professionField]) {
		return CategoryWaitlist
	}

	return CategorySubscription
}

// isPresent treats nil, "", false and zero as absent.
func isPresent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
