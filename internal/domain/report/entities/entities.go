// Package entities contains domain entities
package entities

import "time"

// ReportType classifies a citizen report.
// Wire values are part of the persisted format and must not change.
type ReportType int

const (
	ReportTypeShopOverprice ReportType = 0
	ReportTypeOther         ReportType = 9
)

// String returns a stable machine name for the type
func (t ReportType) String() string {
	switch t {
	case ReportTypeShopOverprice:
		return "shop_overprice"
	case ReportTypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// ReportStatus is the moderation status of a report.
// Removed is a soft delete: the record stays retrievable forever.
type ReportStatus int

const (
	ReportStatusUnseen  ReportStatus = 0
	ReportStatusSeen    ReportStatus = 1
	ReportStatusRemoved ReportStatus = 2
)

// String returns a stable machine name for the status
func (s ReportStatus) String() string {
	switch s {
	case ReportStatusUnseen:
		return "unseen"
	case ReportStatusSeen:
		return "seen"
	case ReportStatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ParseReportStatus parses a machine name produced by ReportStatus.String
func ParseReportStatus(s string) (ReportStatus, bool) {
	switch s {
	case "unseen":
		return ReportStatusUnseen, true
	case "seen":
		return ReportStatusSeen, true
	case "removed":
		return ReportStatusRemoved, true
	default:
		return 0, false
	}
}

// Report is an anonymous citizen report.
// Type, CreatedAt and Message are immutable after creation; only Status changes.
type Report struct {
	ID        int64        `json:"id"`
	Type      ReportType   `json:"type"`
	Status    ReportStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	Message   string       `json:"message"`
}

// ContentKind is the kind of a single news post item
type ContentKind string

const (
	ContentKindText  ContentKind = "text"
	ContentKindPhoto ContentKind = "photo"
	ContentKindVideo ContentKind = "video"
)

// ContentItem is one piece of a news post. For photo and video items the
// payload is an opaque transport reference (Telegram file id), for text it is
// the text itself.
type ContentItem struct {
	Kind    ContentKind `json:"kind"`
	Payload string      `json:"payload"`
}

// NewsPost is an ordered sequence of content items composed by an admin.
// It is owned by the submitting admin until confirmed, then handed to the
// publication queue.
type NewsPost struct {
	Items []ContentItem `json:"items"`
}

// Append adds a content item preserving submission order
func (p *NewsPost) Append(item ContentItem) {
	p.Items = append(p.Items, item)
}

// Empty reports whether the post has no content
func (p *NewsPost) Empty() bool {
	return p == nil || len(p.Items) == 0
}
