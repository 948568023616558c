package models

import "time"

// Consultation is a message left through the public contact form.
type Consultation struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Lastname     string    `bson:"lastname" json:"lastname"`
	Age          int       `bson:"age" json:"age"`
	Phone        string    `bson:"phone" json:"phone"`
	Consultation string    `bson:"consultation" json:"consultation"`
	IsRead       bool      `bson:"is_read" json:"is_read"`
	IsDeleted    bool      `bson:"is_deleted" json:"is_deleted"`
	ArrivalDate  string    `bson:"arrival_date" json:"arrival_date"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type MessageRequest struct {
	Name         string `json:"name" binding:"required"`
	Lastname     string `json:"lastname" binding:"required"`
	Age          int    `json:"age"`
	Phone        string `json:"phone" binding:"required"`
	Consultation string `json:"consultation" binding:"required"`
	ArrivalDate  string `json:"arrival_date"`
}
