package model

import "time"

// User is the account master record. The JSON shape matches what the web
// client expects (`_id`, `fullName`, `profilePic`); the password hash never
// leaves the server.
type User struct {
	UserID       string    `bson:"user_id" json:"_id"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"full_name" json:"fullName"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FaceURL      string    `bson:"face_url" json:"profilePic"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

const Collection = "users"
