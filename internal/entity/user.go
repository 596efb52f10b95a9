package entity

import "time"

type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	FCMToken  string    `json:"fcm_token" db:"fcm_token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
