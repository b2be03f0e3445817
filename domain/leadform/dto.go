package leadform

type SubscribeRequest struct {
	Email string `form:"email" json:"email" binding:"required,email,max=255"`
}

// Payload is the body posted to the submission sink for a subscription.
func (r *SubscribeRequest) Payload() map[string]any {
	return map[string]any{
		"type":  "subscription",
		"email": r.Email,
	}
}
