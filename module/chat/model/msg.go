package model

import "time"

// Message is one direct message between two users. Either Text or Image
// (an already-uploaded URL) may be empty, not both.
type Message struct {
	MsgID      string    `bson:"msg_id" json:"_id"`
	SenderID   string    `bson:"sender_id" json:"senderId"`
	ReceiverID string    `bson:"receiver_id" json:"receiverId"`
	Text       string    `bson:"text,omitempty" json:"text,omitempty"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

const Collection = "messages"
