package model

import "time"

// LoanItem is a single item the patron currently has checked out.
type LoanItem struct {
	Title            string `json:"title"`
	Category         string `json:"category"`
	CheckoutLocation string `json:"checkout_location"`
	CheckoutDate     string `json:"checkout_date"`
	ReturnDate       string `json:"return_date"`
	ReservedCount    *int   `json:"reserved_count"`
	IsExtendable     *bool  `json:"is_extendable"`
	ExtendCount      *int   `json:"extend_count"`
	IsReserved       *bool  `json:"is_reserved"`
	IsExpired        bool   `json:"is_expired"`
}

// Expired reports whether the return date lies before today's calendar day.
// An unparseable return date is never expired.
func (l LoanItem) Expired(today time.Time) bool {
	due, ok := ParseDate(l.ReturnDate)
	if !ok {
		return false
	}
	y, m, d := today.In(Tokyo).Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, Tokyo))
}

// ReservationItem is a single hold the patron has placed.
type ReservationItem struct {
	Title               string `json:"title"`
	Category            string `json:"category"`
	ReceiveLocation     string `json:"receive_location"`
	NotificationMethod  string `json:"notification_method"`
	ReserveDate         string `json:"reserve_date"`
	ReserveRank         string `json:"reserve_rank"`
	ReserveStatus       string `json:"reserve_status"`
	ReserveCancelReason string `json:"reserve_cancel_reason"`
	ReserveExpireDate   string `json:"reserve_expire_date"`
}

// Result is the combined answer for one patron at one library.
type Result struct {
	Region       string            `json:"region"`
	Loans        []LoanItem        `json:"lent_items"`
	Reservations []ReservationItem `json:"reserve_items"`
	FetchedAt    time.Time         `json:"fetched_at"`
}

// Credentials identify a patron on a library portal.
type Credentials struct {
	UserID   string
	Password string
}

func (c Credentials) String() string {
	return c.UserID + ":********"
}

// IntPtr and BoolPtr build the optional fields of LoanItem.
func IntPtr(n int) *int { return &n }

func BoolPtr(b bool) *bool { return &b }
