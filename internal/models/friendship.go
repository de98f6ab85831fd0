package models

// Friendship is a directed "added as friend" edge between two users.
// A row user->friend does not imply the reverse edge exists; the
// composite primary key is (user_id, friends_id).
type Friendship struct {
	UserID   uint `gorm:"primaryKey;column:user_id" json:"userId"`
	FriendID uint `gorm:"primaryKey;column:friends_id" json:"friendsId"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Friend *User `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friends_list"
}
