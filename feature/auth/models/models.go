package models

import "time"

// Member is an authentication subject. Members own no catalog data; they
// exist solely to gate access to the API.
type Member struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name.
func (Member) TableName() string {
	return "members"
}

// MemberLoginLog tracks the latest login/logout per member. One row per
// member, upserted on login.
type MemberLoginLog struct {
	ID         uint       `gorm:"primaryKey"`
	MemberID   uint       `gorm:"not null;uniqueIndex"`
	LoginTime  time.Time  `gorm:"not null"`
	LogoutTime *time.Time
}

// TableName overrides the table name.
func (MemberLoginLog) TableName() string {
	return "member_login_logs"
}

// MemberResponse is the member shape returned by the API.
type MemberResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToResponse converts the row to its API shape.
func (m Member) ToResponse() MemberResponse {
	return MemberResponse{ID: m.ID, Name: m.Name, Email: m.Email}
}

// AuthPayload is the register/login response body.
type AuthPayload struct {
	Member    MemberResponse `json:"user"`
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"`
}

// TokenPayload is the refresh response body.
type TokenPayload struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}
