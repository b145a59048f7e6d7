// Package lawyer exposes the lawyer directory: search, profile lookup and
// reviews.
package lawyer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linka-app/linka/internal/api"
)

// ErrEmptyReview is returned when posting a review with no text.
var ErrEmptyReview = errors.New("review is empty")

// DirectoryAPI is the slice of the gateway the service needs. Satisfied by
// *api.Client.
type DirectoryAPI interface {
	SearchLawyers(ctx context.Context, specialization string) ([]api.Lawyer, error)
	GetLawyer(ctx context.Context, lawyerID int) (api.Lawyer, error)
	LawyerReviews(ctx context.Context, lawyerID int) ([]api.LawyerReview, error)
	CreateLawyerReview(ctx context.Context, lawyerID int, review, caseType string) (api.LawyerReview, error)
}

// Service is a thin stateless facade over the directory endpoints.
type Service struct {
	client DirectoryAPI
}

// NewService creates a directory service over the given gateway.
func NewService(client DirectoryAPI) *Service {
	return &Service{client: client}
}

// Search returns the lawyers matching a specialization. Empty input returns
// the full directory; search is public and works logged out.
func (s *Service) Search(ctx context.Context, specialization string) ([]api.Lawyer, error) {
	lawyers, err := s.client.SearchLawyers(ctx, strings.TrimSpace(specialization))
	if err != nil {
		return nil, fmt.Errorf("search lawyers: %w", err)
	}
	return lawyers, nil
}

// Get returns one lawyer profile.
func (s *Service) Get(ctx context.Context, lawyerID int) (api.Lawyer, error) {
	lw, err := s.client.GetLawyer(ctx, lawyerID)
	if err != nil {
		return api.Lawyer{}, fmt.Errorf("get lawyer %d: %w", lawyerID, err)
	}
	return lw, nil
}

// Reviews returns the reviews of a lawyer.
func (s *Service) Reviews(ctx context.Context, lawyerID int) ([]api.LawyerReview, error) {
	reviews, err := s.client.LawyerReviews(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for lawyer %d: %w", lawyerID, err)
	}
	return reviews, nil
}

// AddReview posts a review. The review text is validated locally; caseType is
// optional and passed through as-is.
func (s *Service) AddReview(ctx context.Context, lawyerID int, review, caseType string) (api.LawyerReview, error) {
	review = strings.TrimSpace(review)
	if review == "" {
		return api.LawyerReview{}, ErrEmptyReview
	}
	created, err := s.client.CreateLawyerReview(ctx, lawyerID, review, caseType)
	if err != nil {
		return api.LawyerReview{}, fmt.Errorf("post review for lawyer %d: %w", lawyerID, err)
	}
	return created, nil
}
