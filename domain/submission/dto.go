package submission

const (
	submitSuccessMessage = "Submission saved successfully"
	submitFailureMessage = "Failed to save submission"
)

// SubmitSuccessResponse and SubmitErrorResponse are the fixed wire contract
// of POST /api/submit; they are not wrapped in the {code,data,message} envelope.
type SubmitSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SubmitErrorResponse struct {
	Error string `json:"error"`
}

type SubmitResult struct {
	Category  Category `json:"category"`
	Timestamp string   `json:"timestamp"`
}

type ListResponse struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Records  []Record `json:"records"`
}

type StatsResponse struct {
	Waitlist     int64 `json:"waitlist"`
	Subscription int64 `json:"subscription"`
	Total        int64 `json:"total"`
}

func ToListResponse(category Category, records []Record) ListResponse {
	if records == nil {
		records = []Record{}
	}
	return ListResponse{
		Category: category,
		Count:    len(records),
		Records:  records,
	}
}
