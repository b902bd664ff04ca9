package mailshell

import (
	"time"
)

// DefaultSelfAddress is the address the sent view matches when no other is configured
const DefaultSelfAddress = "you@company.com"

// Message represents a received or sent email held in the mailbox collection
type Message struct {
	ID          string       // Unique message ID
	Subject     string       // Subject line
	Sender      string       // Sender address
	Recipient   string       // Recipient address
	Body        string       // Plain text body
	Attachments []Attachment // Attachments in display order
	Timestamp   time.Time    // Arrival time
	Read        bool         // Read flag
	Starred     bool         // Starred flag
	Labels      []string     // Labels (set-like)
}

// Attachment is a named binary payload associated with a Message or Draft
type Attachment struct {
	ID       string // Unique attachment ID
	Name     string // File name
	Size     int64  // Size in bytes
	MIMEType string // MIME type
	Path     string // Optional backing file path or URL
}

// Draft is an in-progress, unsent email
type Draft struct {
	To          string
	Cc          string
	Bcc         string
	Subject     string
	Body        string
	Attachments []Attachment
}

// HasLabel reports whether the message carries the given label
func (m Message) HasLabel(label string) bool {
	for _, l := range m.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// clone returns a copy of the message that shares no slices with the original
func (m Message) clone() Message {
	c := m
	if m.Attachments != nil {
		c.Attachments = make([]Attachment, len(m.Attachments))
		copy(c.Attachments, m.Attachments)
	}
	if m.Labels != nil {
		c.Labels = make([]string, len(m.Labels))
		copy(c.Labels, m.Labels)
	}
	return c
}

// clone returns a copy of the draft that shares no slices with the original
func (d Draft) clone() Draft {
	c := d
	if d.Attachments != nil {
		c.Attachments = make([]Attachment, len(d.Attachments))
		copy(c.Attachments, d.Attachments)
	}
	return c
}

// SampleMessages returns the built-in demo mailbox: three messages, one unread and one starred
func SampleMessages() []Message {
	return []Message{
		{
			ID:        "1",
			Subject:   "Project Update - Q3 Results",
			Sender:    "john.doe@company.com",
			Recipient: DefaultSelfAddress,
			Body:      "Hi there,\n\nI wanted to share the latest project updates with you. Please find the attached quarterly report and let me know if you have any questions.\n\nBest regards,\nJohn",
			Attachments: []Attachment{
				{ID: "att1", Name: "Q3_Report.pdf", Size: 2048576, MIMEType: "application/pdf"},
				{ID: "att2", Name: "Budget_Analysis.xlsx", Size: 1024000, MIMEType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
			},
			Timestamp: time.Date(2025, time.July, 27, 14, 30, 0, 0, time.Local),
			Read:      false,
			Starred:   true,
			Labels:    []string{"Work", "Important"},
		},
		{
			ID:          "2",
			Subject:     "Meeting Reminder - Tomorrow 2 PM",
			Sender:      "sarah.wilson@company.com",
			Recipient:   DefaultSelfAddress,
			Body:        "Just a quick reminder about our meeting tomorrow at 2 PM. We'll be discussing the new product launch strategy.",
			Attachments: []Attachment{},
			Timestamp:   time.Date(2025, time.July, 27, 10, 15, 0, 0, time.Local),
			Read:        true,
			Starred:     false,
			Labels:      []string{"Meetings"},
		},
		{
			ID:        "3",
			Subject:   "Invoice #12345",
			Sender:    "billing@vendor.com",
			Recipient: DefaultSelfAddress,
			Body:      "Please find attached the invoice for services rendered in July 2025.",
			Attachments: []Attachment{
				{ID: "att3", Name: "Invoice_12345.pdf", Size: 512000, MIMEType: "application/pdf"},
			},
			Timestamp: time.Date(2025, time.July, 26, 16, 45, 0, 0, time.Local),
			Read:      true,
			Starred:   false,
			Labels:    []string{"Finance"},
		},
	}
}
