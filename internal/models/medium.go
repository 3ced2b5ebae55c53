package models

import "time"

type Medium struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	IsPremium      bool      `json:"is_premium"`
	PostedDatetime time.Time `json:"posted_datetime"`
}

// MediumView is a Medium joined with its owner's username, as shown in listings.
type MediumView struct {
	Medium
	Username string `json:"username"`
}

type MediumRelation struct {
	ID       int `json:"id"`
	UserID   int `json:"user_id"`
	MediumID int `json:"medium_id"`
}
