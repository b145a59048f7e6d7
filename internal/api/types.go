package api

import "time"

// User is the authenticated user profile returned by /api/users/me.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

// ScammerInfo is a typed key-value fact about a suspected perpetrator.
type ScammerInfo struct {
	InfoType string `json:"info_type"`
	Value    string `json:"value"`
}

// Case is a submitted fraud report.
type Case struct {
	ID            int           `json:"id"`
	CaseType      string        `json:"case_type"`
	CaseTypeOther string        `json:"case_type_other,omitempty"`
	Statement     string        `json:"statement"`
	ScammerInfos  []ScammerInfo `json:"scammer_infos,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CreateCaseRequest is the body of POST /api/case.
type CreateCaseRequest struct {
	CaseType      string        `json:"case_type"`
	CaseTypeOther string        `json:"case_type_other"`
	Statement     string        `json:"statement"`
	ScammerInfos  []ScammerInfo `json:"scammer_infos"`
}

// SimilarCase is one entry of the ranked similar-case list. It is a read-only
// projection; the client never mutates it.
type SimilarCase struct {
	CaseID    int       `json:"case_id"`
	Score     float64   `json:"score"`
	Rank      int       `json:"rank"`
	CaseType  string    `json:"case_type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// Group is a multi-party chat thread associated with one case.
type Group struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	OwnerID     int       `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateGroupRequest is the body of POST /api/groups.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
}

// Message is a group chat message.
type Message struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	GroupID   int       `json:"group_id"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Consultation is a legal Q&A thread, distinct from a case group.
type Consultation struct {
	ID        int                   `json:"id"`
	CaseID    int                   `json:"case_id"`
	Name      string                `json:"name"`
	AuthorID  int                   `json:"author_id"`
	GroupID   int                   `json:"group_id"`
	CreatedAt time.Time             `json:"created_at"`
	Messages  []ConsultationMessage `json:"messages,omitempty"`
}

// CreateConsultationRequest is the body of POST /api/consultation.
type CreateConsultationRequest struct {
	CaseID int    `json:"case_id"`
	Name   string `json:"name"`
}

// ConsultationMessage is one message within a consultation thread. IsAI marks
// AI-authored content; it affects presentation only, never routing.
type ConsultationMessage struct {
	ID             int       `json:"id"`
	Content        string    `json:"content"`
	ConsultationID int       `json:"consultation_id"`
	AuthorID       int       `json:"author_id"`
	CreatedAt      time.Time `json:"created_at"`
	IsAI           bool      `json:"isAI,omitempty"`
}

// TextValue is the wrapped string representation the lawyer directory uses
// for its text fields.
type TextValue struct {
	Val string `json:"val"`
}

// Lawyer is a lawyer directory entry.
type Lawyer struct {
	ID              int         `json:"id"`
	LawyerID        TextValue   `json:"lawyer_id"`
	LawyerName      TextValue   `json:"lawyer_name"`
	Bio             TextValue   `json:"bio"`
	AvatarURL       TextValue   `json:"avatar_url"`
	Specializations []TextValue `json:"specializations"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// LawyerReview is one review of a lawyer.
type LawyerReview struct {
	ID        int       `json:"id"`
	LawyerID  TextValue `json:"lawyer_id"`
	AuthorID  TextValue `json:"author_id"`
	CaseType  string    `json:"case_type"`
	Review    TextValue `json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateUserRequest is the body of PUT /api/users/me.
type UpdateUserRequest struct {
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}
