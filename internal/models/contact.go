package models

import "time"

type Contact struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Phone            string    `json:"phone"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	HasWhatsApp      bool      `json:"hasWhatsApp"`
	BlockedCampaigns bool      `json:"blockedCampaigns"`
	BlockedFromBot   bool      `json:"blockedFromBot"`
	BlockedFromCC    bool      `json:"blockedFromCC"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ContactUpdate carries a partial edit; nil fields are left untouched.
type ContactUpdate struct {
	Phone            *string
	FirstName        *string
	LastName         *string
	Email            *string
	HasWhatsApp      *bool
	BlockedCampaigns *bool
	BlockedFromBot   *bool
	BlockedFromCC    *bool
}

// Contact flags that can be used to filter the contact list.
const (
	ContactFlagHasWhatsApp      = "hasWhatsApp"
	ContactFlagBlockedCampaigns = "blockedCampaigns"
	ContactFlagBlockedFromBot   = "blockedFromBot"
	ContactFlagBlockedFromCC    = "blockedFromCC"
)

func IsContactFlag(key string) bool {
	switch key {
	case ContactFlagHasWhatsApp, ContactFlagBlockedCampaigns, ContactFlagBlockedFromBot, ContactFlagBlockedFromCC:
		return true
	}
	return false
}

// Flag returns the value of a named flag. Unknown keys report false.
func (c *Contact) Flag(key string) bool {
	switch key {
	case ContactFlagHasWhatsApp:
		return c.HasWhatsApp
	case ContactFlagBlockedCampaigns:
		return c.BlockedCampaigns
	case ContactFlagBlockedFromBot:
		return c.BlockedFromBot
	case ContactFlagBlockedFromCC:
		return c.BlockedFromCC
	}
	return false
}
