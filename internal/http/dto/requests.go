package dto

import "time"

type CreateCampaignRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Excel string `json:"excel" validate:"max=1024"`
}

type UpdateCampaignRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Excel *string `json:"excel,omitempty" validate:"omitempty,max=1024"`
}

// BulkDeleteRequest is shared by every resource.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"dive,required"`
}

type CreateListRequest struct {
	Name                           string     `json:"name" validate:"required,max=255"`
	CampaignID                     string     `json:"campaignId" validate:"required"`
	SendingType                    *string    `json:"sendingType,omitempty"`
	IgnoreCustomersReceivedMessage *string    `json:"ignoreCustomersReceivedMessage,omitempty"`
	DailyLimit                     *int       `json:"dailyLimit,omitempty" validate:"omitempty,gte=0"`
	DailySendingLimit              *int       `json:"dailySendingLimit,omitempty" validate:"omitempty,gte=0"`
	FromSrl                        *int       `json:"fromSrl,omitempty" validate:"omitempty,gte=0"`
	ToSrl                          *int       `json:"toSrl,omitempty" validate:"omitempty,gte=0"`
	Type                           *string    `json:"type,omitempty" validate:"omitempty,oneof=run-now schedule"`
	ScheduleDate                   *time.Time `json:"scheduleDate,omitempty" validate:"required_if=Type schedule"`
}

type UpdateListRequest struct {
	Name                           *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	SendingType                    *string    `json:"sendingType,omitempty"`
	IgnoreCustomersReceivedMessage *string    `json:"ignoreCustomersReceivedMessage,omitempty"`
	DailyLimit                     *int       `json:"dailyLimit,omitempty" validate:"omitempty,gte=0"`
	DailySendingLimit              *int       `json:"dailySendingLimit,omitempty" validate:"omitempty,gte=0"`
	FromSrl                        *int       `json:"fromSrl,omitempty" validate:"omitempty,gte=0"`
	ToSrl                          *int       `json:"toSrl,omitempty" validate:"omitempty,gte=0"`
	Type                           *string    `json:"type,omitempty" validate:"omitempty,oneof=run-now schedule"`
	ScheduleDate                   *time.Time `json:"scheduleDate,omitempty"`
}

type ButtonRequest struct {
	Text        string  `json:"text" validate:"required,max=255"`
	URL         *string `json:"url,omitempty" validate:"omitempty,url"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,min=6"`
	TypeID      string  `json:"typeId" validate:"required"`
}

// TemplateRequest is used for both create and update; a template edit
// always sends the whole form.
type TemplateRequest struct {
	Name                string          `json:"name" validate:"required,max=255"`
	AllowCategoryChange bool            `json:"allowCategoryChange"`
	CategoryID          string          `json:"categoryId" validate:"required"`
	TypeID              string          `json:"typeId" validate:"required"`
	LanguageID          string          `json:"languageId" validate:"required"`
	BodyMessage         string          `json:"bodyMessage" validate:"required"`
	Header              bool            `json:"header"`
	HeaderText          *string         `json:"headerText,omitempty"`
	HeaderTypeID        string          `json:"headerTypeId" validate:"required_if=Header true"`
	Footer              bool            `json:"footer"`
	FooterText          string          `json:"footerText" validate:"required_if=Footer true"`
	Buttons             []ButtonRequest `json:"buttons,omitempty" validate:"omitempty,dive"`
}

type ContactRequest struct {
	Phone            string `json:"phone" validate:"required,min=11"`
	FirstName        string `json:"firstName" validate:"max=255"`
	LastName         string `json:"lastName" validate:"max=255"`
	Email            string `json:"email" validate:"required,email"`
	HasWhatsApp      *bool  `json:"hasWhatsApp,omitempty"`
	BlockedCampaigns bool   `json:"blockedCampaigns"`
	BlockedFromBot   bool   `json:"blockedFromBot"`
	BlockedFromCC    bool   `json:"blockedFromCC"`
}

// UpdateContactRequest is a partial edit: omitted fields keep their value.
type UpdateContactRequest struct {
	Phone            *string `json:"phone,omitempty" validate:"omitempty,min=11"`
	FirstName        *string `json:"firstName,omitempty" validate:"omitempty,max=255"`
	LastName         *string `json:"lastName,omitempty" validate:"omitempty,max=255"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	HasWhatsApp      *bool   `json:"hasWhatsApp,omitempty"`
	BlockedCampaigns *bool   `json:"blockedCampaigns,omitempty"`
	BlockedFromBot   *bool   `json:"blockedFromBot,omitempty"`
	BlockedFromCC    *bool   `json:"blockedFromCC,omitempty"`
}
