package model

import (
	"github.com/google/uuid"
)

// Schedule is a bookable grooming time slot.
type Schedule struct {
	Base
	Title string `db:"title" json:"title"`
}

// Cage is a boarding cage size with its nightly price.
type Cage struct {
	Base
	Title string  `db:"title" json:"title"`
	Price float64 `db:"price" json:"price"`
}

type Pet struct {
	Base
	UserID uuid.UUID `db:"user_id" json:"user"`
	Name   string    `db:"name" json:"name"`
	Age    int       `db:"age" json:"age"`
	Gender string    `db:"gender" json:"gender"`
	Breed  string    `db:"breed" json:"breed"`
}

type Branch struct {
	Base
	Name     string `db:"name" json:"name"`
	Address  string `db:"address" json:"address"`
	MobileNo string `db:"mobile_no" json:"mobileNo"`
	IsActive bool   `db:"is_active" json:"isActive"`
}

// Profile holds the personal details of a customer or staff account.
type Profile struct {
	Base
	UserID        uuid.UUID `db:"user_id" json:"user"`
	FullName      string    `db:"full_name" json:"fullName"`
	Address       string    `db:"address" json:"address"`
	ContactEmail  string    `db:"contact_email" json:"contactEmail"`
	ContactNumber string    `db:"contact_number" json:"contactNumber"`
	Facebook      string    `db:"facebook" json:"facebook"`
	Messenger     string    `db:"messenger" json:"messenger"`
	IsActive      bool      `db:"is_active" json:"isActive"`
}
