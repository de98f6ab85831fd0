package models

// TripMember is the join entity granting a user visibility into a
// trip's schedule (many-to-many User <-> Trip).
type TripMember struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	TripID uint `gorm:"not null;uniqueIndex:idx_trip_user" json:"tripId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_trip_user" json:"userId"`

	Trip *Trip `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (TripMember) TableName() string {
	return "trip_users"
}
