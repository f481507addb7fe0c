package domain

import "strings"

// JobCodeRecord is an occupation entry managed through the admin service.
type JobCodeRecord struct {
	ID          int64  `json:"id"`
	NCOCode     string `json:"nco_code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// JobCodeInput is the payload for creating or updating a record.
// Field limits mirror the service's column sizes.
type JobCodeInput struct {
	NCOCode     string `json:"nco_code" validate:"required,max=20"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

// Normalize returns a copy with surrounding whitespace removed.
func (in JobCodeInput) Normalize() JobCodeInput {
	return JobCodeInput{
		NCOCode:     strings.TrimSpace(in.NCOCode),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
}

// NoticeKind distinguishes success and error banners.
type NoticeKind int

const (
	// NoticeSuccess is a confirmation banner.
	NoticeSuccess NoticeKind = iota
	// NoticeError is a failure banner.
	NoticeError
)

// Notice is a transient banner shown after an admin action.
type Notice struct {
	Kind NoticeKind
	Text string
	// Seq identifies this notice so an expiry only clears the notice it was scheduled for.
	Seq uint64
}

// IsZero reports whether no notice is set.
func (n Notice) IsZero() bool {
	return n.Text == ""
}
