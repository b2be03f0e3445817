package leadform

import (
	"context"

	"github.com/akeren/bizguard-leads/domain/submission"
)

// Submitter delivers a finished payload to the submission sink.
type Submitter interface {
	Submit(ctx context.Context, payload map[string]any) error
}

type SubmitterFunc func(ctx context.Context, payload map[string]any) error

func (f SubmitterFunc) Submit(ctx context.Context, payload map[string]any) error {
	return f(ctx, payload)
}

type serviceSubmitter struct {
	service submission.SubmissionService
}

// NewServiceSubmitter submits in-process through the submission service.
func NewServiceSubmitter(service submission.SubmissionService) Submitter {
	return &serviceSubmitter{service: service}
}

func (s *serviceSubmitter) Submit(ctx context.Context, payload map[string]any) error {
	_, err := s.service.Submit(ctx, payload)
	return err
}
