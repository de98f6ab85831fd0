package models

// Event is a scheduled activity within a trip. Date is a DateLayout
// string and StartTime/EndTime are display strings like "0900am" —
// they are not sortable or arithmetic-safe.
type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TripID      uint   `gorm:"not null;index" json:"tripId"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Note        string `gorm:"column:notes" json:"note"`
	CreatedBy   uint   `json:"createdBy"`

	Trip *Trip `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
}
