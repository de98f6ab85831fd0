package models

import (
	"time"
)

// DateLayout is the wire and storage format for trip dates.
const DateLayout = "2006-01-02"

// Trip is a named travel plan with a date range, owned by a creating user.
// StartDate and EndDate are stored as DateLayout strings; time-of-day is
// not part of a trip's range.
type Trip struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CreatedBy uint   `gorm:"not null" json:"createdBy"`
	TripName  string `gorm:"not null" json:"tripName"`
	StartDate string `gorm:"not null" json:"startDate"`
	EndDate   string `gorm:"not null" json:"endDate"`

	Creator *User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
}

// DateRange parses the trip's start and end dates.
func (t *Trip) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, t.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse(DateLayout, t.EndDate)
	return
}

// MemberTrip is the projection returned when listing the trips a user
// belongs to, joined through trip_users.
type MemberTrip struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	TripName  string `json:"tripName"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// TripMemberDetail is the projection returned when listing the users on
// a trip, joined through trip_users.
type TripMemberDetail struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	TripName    string `json:"tripName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}
