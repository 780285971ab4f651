package storage

import (
	"context"
	"strconv"
	"time"
)

// Response is one completed survey, one value per schedule key. It is built
// exactly once per session at completion; ownership moves to the sink.
type Response struct {
	Timestamp     time.Time `json:"timestamp"`
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	Company       string    `json:"company"`
	City          string    `json:"city"`
	FleetSize     string    `json:"fleet_size"`
	LeadChannels  string    `json:"lead_channels"`
	Features      string    `json:"features"`
	PilotInterest string    `json:"pilot_interest"`
	ContactName   string    `json:"contact_name"`
	ContactPhone  string    `json:"contact_phone"`
}

// Header is the fixed column order of the row storage, shared by the Sheets
// sink and the CSV fallback.
func Header() []string {
	return []string{
		"timestamp", "user_id", "username", "company", "city", "fleet_size",
		"lead_channels", "features", "pilot_interest", "contact_name", "contact_phone",
	}
}

// Row renders the response in Header order. The timestamp is RFC 3339 UTC
// with second precision.
func (r Response) Row() []string {
	return []string{
		r.Timestamp.UTC().Format(time.RFC3339),
		formatUserID(r.UserID),
		r.Username,
		r.Company,
		r.City,
		r.FleetSize,
		r.LeadChannels,
		r.Features,
		r.PilotInterest,
		r.ContactName,
		r.ContactPhone,
	}
}

func formatUserID(id int64) string { return strconv.FormatInt(id, 10) }

// NewResponse builds a Response from collected answers, defaulting any
// missing key to the empty string.
func NewResponse(ts time.Time, userID int64, username string, answers map[string]string) Response {
	return Response{
		Timestamp:     ts,
		UserID:        userID,
		Username:      username,
		Company:       answers["company"],
		City:          answers["city"],
		FleetSize:     answers["fleet_size"],
		LeadChannels:  answers["lead_channels"],
		Features:      answers["features"],
		PilotInterest: answers["pilot_interest"],
		ContactName:   answers["contact_name"],
		ContactPhone:  answers["contact_phone"],
	}
}

// Sink is the primary durable store for completed responses.
// Implementations may perform blocking I/O; the survey core never calls a
// sink directly.
type Sink interface {
	Append(ctx context.Context, r Response) error
}

// Reader lists responses already present in a primary store. Used by admin
// reports; separate from Sink because the fallback recorder cannot satisfy
// a context-aware read.
type Reader interface {
	LoadAll(ctx context.Context) ([]Response, error)
}

// Recorder is the local fallback store. LoadAll returns responses in append
// order. Implementations must be safe for concurrent use.
type Recorder interface {
	Append(r Response) error
	LoadAll() ([]Response, error)
}
