package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultMatchLimit is the API-side default for similar-case retrieval.
const DefaultMatchLimit = 5

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

// Register creates a new account. Public endpoint.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var user User
	err := c.do(ctx, c.baseURL, http.MethodPost, "/api/auth/register", nil, req, &user, true)
	return user, err
}

// Login exchanges credentials for a bearer token. Public endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"username": username, "password": password}
	err := c.do(ctx, c.baseURL, http.MethodPost, "/api/auth/login", nil, body, &out, true)
	return out, err
}

// ChangePassword updates the caller's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.post(ctx, "/api/auth/change-password", body, nil)
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.get(ctx, "/api/users/me", nil, &user)
	return user, err
}

// UpdateMe updates the authenticated user's profile.
func (c *Client) UpdateMe(ctx context.Context, req UpdateUserRequest) (User, error) {
	var user User
	err := c.do(ctx, c.baseURL, http.MethodPut, "/api/users/me", nil, req, &user, false)
	return user, err
}

// ChangeUsername changes the caller's username.
func (c *Client) ChangeUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := c.post(ctx, "/api/users/change-username", map[string]string{"username": username}, &user)
	return user, err
}

// ---------------------------------------------------------------------------
// Cases (AI backend)
// ---------------------------------------------------------------------------

// CreateCase submits a new case.
func (c *Client) CreateCase(ctx context.Context, req CreateCaseRequest) (Case, error) {
	var out Case
	err := c.postAI(ctx, "/api/case", req, &out)
	return out, err
}

// ListCases returns the caller's cases.
func (c *Client) ListCases(ctx context.Context) ([]Case, error) {
	var out []Case
	err := c.getAI(ctx, "/api/case", nil, &out)
	return out, err
}

// SimilarCases returns the ranked similar cases for caseID, bounded by limit.
// A non-positive limit falls back to DefaultMatchLimit.
func (c *Client) SimilarCases(ctx context.Context, caseID, limit int) ([]SimilarCase, error) {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	var out []SimilarCase
	err := c.getAI(ctx, fmt.Sprintf("/api/case/%d/similar", caseID), query, &out)
	return out, err
}

// ---------------------------------------------------------------------------
// Groups
// ---------------------------------------------------------------------------

// ListGroups returns the caller's chat groups.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var out []Group
	err := c.get(ctx, "/api/groups", nil, &out)
	return out, err
}

// CreateGroup creates a new chat group.
func (c *Client) CreateGroup(ctx context.Context, req CreateGroupRequest) (Group, error) {
	var out Group
	err := c.post(ctx, "/api/groups", req, &out)
	return out, err
}

// GroupMessages returns the recent message window of a group, oldest first.
func (c *Client) GroupMessages(ctx context.Context, groupID int) ([]Message, error) {
	var out []Message
	err := c.get(ctx, fmt.Sprintf("/api/groups/%d/messages", groupID), nil, &out)
	return out, err
}

// SendGroupMessage posts a message to a group and returns the stored message.
func (c *Client) SendGroupMessage(ctx context.Context, groupID int, content string) (Message, error) {
	var out Message
	body := map[string]any{"content": content, "group_id": groupID}
	err := c.post(ctx, fmt.Sprintf("/api/groups/%d/messages", groupID), body, &out)
	return out, err
}

// ---------------------------------------------------------------------------
// Consultations (AI backend)
// ---------------------------------------------------------------------------

// ListConsultations returns the caller's consultation threads.
func (c *Client) ListConsultations(ctx context.Context) ([]Consultation, error) {
	var out []Consultation
	err := c.getAI(ctx, "/api/consultation", nil, &out)
	return out, err
}

// CreateConsultation opens a new consultation thread.
func (c *Client) CreateConsultation(ctx context.Context, req CreateConsultationRequest) (Consultation, error) {
	var out Consultation
	err := c.postAI(ctx, "/api/consultation", req, &out)
	return out, err
}

// ConsultationMessages returns the message history of a consultation.
func (c *Client) ConsultationMessages(ctx context.Context, consultationID int) ([]ConsultationMessage, error) {
	var out []ConsultationMessage
	err := c.getAI(ctx, fmt.Sprintf("/api/consultation/%d/messages", consultationID), nil, &out)
	return out, err
}

// SendConsultationMessage posts a human-routed message to a consultation.
func (c *Client) SendConsultationMessage(ctx context.Context, consultationID int, content string) (ConsultationMessage, error) {
	var out ConsultationMessage
	body := map[string]string{"content": content}
	err := c.postAI(ctx, fmt.Sprintf("/api/consultation/%d/messages", consultationID), body, &out)
	return out, err
}

// SendConsultationAIMessage posts an AI-routed message to a consultation.
func (c *Client) SendConsultationAIMessage(ctx context.Context, consultationID int, content string) (ConsultationMessage, error) {
	var out ConsultationMessage
	body := map[string]string{"content": content}
	err := c.postAI(ctx, fmt.Sprintf("/api/consultation/%d/messages/ai", consultationID), body, &out)
	return out, err
}

// ---------------------------------------------------------------------------
// Lawyer directory
// ---------------------------------------------------------------------------

// SearchLawyers searches the lawyer directory. Public endpoint; an empty
// specialization returns everyone.
func (c *Client) SearchLawyers(ctx context.Context, specialization string) ([]Lawyer, error) {
	query := url.Values{}
	if specialization != "" {
		query.Set("specialization", specialization)
	}
	var out []Lawyer
	err := c.do(ctx, c.baseURL, http.MethodGet, "/api/lawyers/search", query, nil, &out, true)
	return out, err
}

// GetLawyer returns one lawyer directory entry.
func (c *Client) GetLawyer(ctx context.Context, lawyerID int) (Lawyer, error) {
	var out Lawyer
	err := c.get(ctx, fmt.Sprintf("/api/lawyers/%d", lawyerID), nil, &out)
	return out, err
}

// LawyerReviews returns the reviews of a lawyer.
func (c *Client) LawyerReviews(ctx context.Context, lawyerID int) ([]LawyerReview, error) {
	var out []LawyerReview
	err := c.get(ctx, fmt.Sprintf("/api/lawyers/%d/reviews", lawyerID), nil, &out)
	return out, err
}

// CreateLawyerReview posts a review for a lawyer.
func (c *Client) CreateLawyerReview(ctx context.Context, lawyerID int, review, caseType string) (LawyerReview, error) {
	var out LawyerReview
	body := map[string]any{"review": TextValue{Val: review}, "case_type": caseType}
	err := c.post(ctx, fmt.Sprintf("/api/lawyers/%d/reviews", lawyerID), body, &out)
	return out, err
}
