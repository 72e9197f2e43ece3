package model

import "time"

// PushSubscription holds the information for a dashboard browser's push
// subscription. Every subscription receives every alert; there is no
// per-resource topic mapping.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
