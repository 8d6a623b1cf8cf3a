package models

import "time"

type ContactSubmission struct {
	ID        string    `gorm:"primarykey" json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     *string   `json:"phone" bson:"phone,omitempty"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
}
