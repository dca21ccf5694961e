package models

import "time"

type Campaign struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	RecordStatus string    `json:"recordStatus"`
	CreationDate time.Time `json:"creationDate"`
	Excel        string    `json:"excel"` // uploaded source file reference, content is not stored
}

// CampaignUpdate carries a partial edit; nil fields are left untouched.
type CampaignUpdate struct {
	Name  *string
	Excel *string
}
