package dto

import "time"

// LetterOptions carries the sender details a dispute letter is signed with.
type LetterOptions struct {
	SenderName    string    `json:"sender_name"`
	SenderAddress string    `json:"sender_address,omitempty"`
	AccountNumber string    `json:"account_number,omitempty"`
	Date          time.Time `json:"date"`
}

// DisputeLetter is a rendered dispute letter plus filing instructions.
type DisputeLetter struct {
	Category     Category `json:"category"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	Instructions []string `json:"instructions"`
}
