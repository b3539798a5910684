package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidReview indicates a review draft that fails validation.
var ErrInvalidReview = errors.New("invalid review")

const (
	minReviewRating = 1
	maxReviewRating = 5
)

// Review is a product review as returned by the shop API.
type Review struct {
	ID           int    `json:"id"`
	UserName     string `json:"userName"`
	Advantage    string `json:"advantage"`
	Disadvantage string `json:"disadvantage"`
	Comment      string `json:"comment"`
	Rating       int    `json:"rating"`
	GuitarID     int    `json:"guitarId"`
	CreateAt     string `json:"createAt,omitempty"`
}

// ReviewDraft is the payload a user submits for a new review.
type ReviewDraft struct {
	UserName     string `json:"userName"`
	Advantage    string `json:"advantage"`
	Disadvantage string `json:"disadvantage"`
	Comment      string `json:"comment"`
	Rating       int    `json:"rating"`
	GuitarID     int    `json:"guitarId"`
}

// Validate checks the draft against the review form rules.
func (d ReviewDraft) Validate() error {
	if d.UserName == "" {
		return fmt.Errorf("%w: user name cannot be empty", ErrInvalidReview)
	}
	if d.Advantage == "" {
		return fmt.Errorf("%w: advantage cannot be empty", ErrInvalidReview)
	}
	if d.Disadvantage == "" {
		return fmt.Errorf("%w: disadvantage cannot be empty", ErrInvalidReview)
	}
	if d.Comment == "" {
		return fmt.Errorf("%w: comment cannot be empty", ErrInvalidReview)
	}
	if d.Rating < minReviewRating || d.Rating > maxReviewRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidReview, minReviewRating, maxReviewRating)
	}
	if d.GuitarID <= 0 {
		return fmt.Errorf("%w: guitar id must be positive", ErrInvalidReview)
	}
	return nil
}
