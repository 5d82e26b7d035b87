package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"trznica/internal/imaging"
)

// AnonymousSeller is the placeholder used when a submission omits the
// seller name entirely. The browser form always fills the field in, so
// this only shows up for direct API submissions.
const AnonymousSeller = "Anonymous"

// Item is a single marketplace listing. Items are immutable once created;
// ID and DateAdded are assigned by the catalog at insert time and never
// supplied by clients.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	MeetingTime string    `json:"meetingTime"`
	Image       *string   `json:"image"`
	DateAdded   time.Time `json:"dateAdded"`
	Seller      string    `json:"seller"`
}

// Price is a decimal amount that accepts both JSON numbers and numeric
// strings, matching what browser form submissions historically sent.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Leave the zero value; validation rejects it with a field message.
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

// Submission holds the raw fields of a listing before validation.
type Submission struct {
	Seller      string `json:"seller"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Location    string `json:"location"`
	MeetingTime string `json:"meetingTime"`
	Image       string `json:"image,omitempty"`
}

// ValidationError reports a single failed validation rule. The message is
// surfaced verbatim to the submitter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks each submission rule in order and returns the first
// failure. The seller field may be empty (it defaults to AnonymousSeller
// at insert time), but a non-empty seller must be at least 2 characters.
func (s Submission) Validate() error {
	if seller := strings.TrimSpace(s.Seller); seller != "" && len(seller) < 2 {
		return &ValidationError{Field: "seller", Message: "seller name must be at least 2 characters"}
	}
	if len(strings.TrimSpace(s.Title)) < 3 {
		return &ValidationError{Field: "title", Message: "title must be at least 3 characters"}
	}
	if len(strings.TrimSpace(s.Description)) < 10 {
		return &ValidationError{Field: "description", Message: "description must be at least 10 characters"}
	}
	price := float64(s.Price)
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return &ValidationError{Field: "price", Message: "price must be a number greater than zero"}
	}
	if len(strings.TrimSpace(s.Location)) < 3 {
		return &ValidationError{Field: "location", Message: "location must be at least 3 characters"}
	}
	if len(strings.TrimSpace(s.MeetingTime)) < 3 {
		return &ValidationError{Field: "meetingTime", Message: "meeting time must be at least 3 characters"}
	}
	if s.Image != "" {
		size, err := imaging.DecodedSize(s.Image)
		if err != nil {
			return &ValidationError{Field: "image", Message: "image must be a base64 data URI"}
		}
		if size > imaging.MaxFileBytes {
			return &ValidationError{Field: "image", Message: "image size must be less than 5MB"}
		}
	}
	return nil
}

// Clean returns the submission with text fields trimmed and the seller
// defaulted, ready for storage. Call only after Validate.
func (s Submission) Clean() Submission {
	s.Seller = strings.TrimSpace(s.Seller)
	if s.Seller == "" {
		s.Seller = AnonymousSeller
	}
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Location = strings.TrimSpace(s.Location)
	s.MeetingTime = strings.TrimSpace(s.MeetingTime)
	return s
}
