package models

import "time"

// ChatMessage is a student's message in their college channel. Deleted
// messages are flagged, not removed.
type ChatMessage struct {
	ID           string     `db:"id" json:"id"`
	SenderUserID string     `db:"sender_user_id" json:"sender_user_id"`
	Content      string     `db:"content" json:"content"`
	IsDeleted    bool       `db:"is_deleted" json:"-"`
	SentAt       time.Time  `db:"sent_at" json:"sent_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
}

// ChatMessageView is a message decorated with its sender.
type ChatMessageView struct {
	ChatMessage
	SenderName      string `db:"sender_name" json:"sender_name"`
	SenderStudentID string `db:"sender_student_id" json:"sender_student_id"`
}
