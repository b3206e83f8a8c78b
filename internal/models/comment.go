package models

import "time"

type Comment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	TaskID    string    `gorm:"type:varchar(36);not null;index" json:"taskId"`
	UserID    string    `gorm:"type:varchar(36);not null" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentWithUser struct {
	Comment
	User User `json:"user"`
}
