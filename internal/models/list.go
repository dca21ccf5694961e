package models

import "time"

// List run types.
const (
	ListTypeRunNow   = "run-now"
	ListTypeSchedule = "schedule"
)

// List is a sending list. It has no owner column; the owner is always the
// owner of its campaign.
type List struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	RecordStatus string    `json:"recordStatus"`
	CreationDate time.Time `json:"creationDate"`
	CampaignID   string    `json:"campaignId"`

	// Scheduling settings. They are stored as configuration only; nothing in
	// this service sends messages.
	SendingType                          *string    `json:"sendingType,omitempty"`
	IgnoreCustomersReceivedMessageWithin *string    `json:"ignoreCustomersReceivedMessageWithin,omitempty"`
	DailyLimit                           *int       `json:"dailyLimit,omitempty"`
	DailySendingLimit                    *int       `json:"dailySendingLimit,omitempty"`
	FromSr                               *int       `json:"fromSr,omitempty"`
	ToSr                                 *int       `json:"toSr,omitempty"`
	Type                                 *string    `json:"type,omitempty"`
	ScheduleDate                         *time.Time `json:"scheduleDate,omitempty"`
}

// ListWithCampaign adds the parent campaign name to avoid a second lookup.
type ListWithCampaign struct {
	List
	Campaign string `json:"campaign"`
}

type ListFilter struct {
	RecordStatus string
	CampaignID   *string
}

type ListUpdate struct {
	Name                                 *string
	SendingType                          *string
	IgnoreCustomersReceivedMessageWithin *string
	DailyLimit                           *int
	DailySendingLimit                    *int
	FromSr                               *int
	ToSr                                 *int
	Type                                 *string
	ScheduleDate                         *time.Time
}
