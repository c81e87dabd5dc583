package models

import "time"

// User is the simulated signed-in identity
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// Name returns the display name, or the username when none is set.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// UserSession is the stored login record. Expires is epoch milliseconds.
type UserSession struct {
	User    User  `json:"user"`
	Expires int64 `json:"expires"`
}

// ExpiredAt reports whether the session is no longer valid at now.
func (s UserSession) ExpiredAt(now time.Time) bool {
	return s.Expires <= now.UnixMilli()
}

// LoginRequest carries the simulated credentials
type LoginRequest struct {
	BaseRequest
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	RememberMe  bool   `json:"remember_me"`
}

// SessionResponse reports the login state of a client session
type SessionResponse struct {
	BaseResponse
	SessionID string `json:"session_id"`
	LoggedIn  bool   `json:"logged_in"`
	User      *User  `json:"user,omitempty"`
	Expires   int64  `json:"expires,omitempty"`
}
