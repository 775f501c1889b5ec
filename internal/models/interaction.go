// Package models defines the TMF683 party interaction domain types.
package models

import (
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Status is the lifecycle state of an interaction record.
type Status string

const (
	StatusOpened     Status = "opened"
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Direction indicates who initiated the interaction.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Priority is the handling urgency of an interaction.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ItemStatus is the resolution state of a single interaction item.
type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "pending"
	ItemStatusInProgress ItemStatus = "inProgress"
	ItemStatusResolved   ItemStatus = "resolved"
	ItemStatusCancelled  ItemStatus = "cancelled"
)

// PartyRole is the function a related party plays in the interaction.
type PartyRole string

const (
	PartyRoleCustomer   PartyRole = "customer"
	PartyRoleAgent      PartyRole = "agent"
	PartyRoleSupervisor PartyRole = "supervisor"
	PartyRoleSystem     PartyRole = "system"
)

// ReferredType classifies the entity behind a party reference.
type ReferredType string

const (
	ReferredIndividual   ReferredType = "Individual"
	ReferredOrganization ReferredType = "Organization"
	ReferredSystem       ReferredType = "System"
)

// ChannelName is the contact medium of a related channel.
type ChannelName string

const (
	ChannelPhone  ChannelName = "phone"
	ChannelEmail  ChannelName = "email"
	ChannelChat   ChannelName = "chat"
	ChannelStore  ChannelName = "store"
	ChannelWeb    ChannelName = "web"
	ChannelMobile ChannelName = "mobile"
	ChannelSocial ChannelName = "social"
)

// TimePeriod is a start timestamp with an optional end.
type TimePeriod struct {
	StartDateTime time.Time  `json:"startDateTime"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
}

// Validate checks that the period has a start timestamp.
func (p TimePeriod) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.StartDateTime, validation.Required),
	)
}

// PartyRef identifies the party or party role behind a RelatedParty entry.
type PartyRef struct {
	ID           string       `json:"id"`
	Href         string       `json:"href,omitempty"`
	Name         string       `json:"name"`
	ReferredType ReferredType `json:"referredType"`
}

// Validate enforces the required reference fields.
func (r PartyRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.ReferredType, validation.Required,
			validation.In(ReferredIndividual, ReferredOrganization, ReferredSystem)),
	)
}

// RelatedParty is one participant in the interaction.
type RelatedParty struct {
	Role             PartyRole `json:"role"`
	PartyOrPartyRole PartyRef  `json:"partyOrPartyRole"`
}

// Validate enforces the role enum and cascades into the party reference.
func (p RelatedParty) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Role, validation.Required,
			validation.In(PartyRoleCustomer, PartyRoleAgent, PartyRoleSupervisor, PartyRoleSystem)),
		validation.Field(&p.PartyOrPartyRole),
	)
}

// EntityRef is a free-form reference to an external entity.
type EntityRef struct {
	ID           string `json:"id,omitempty"`
	Href         string `json:"href,omitempty"`
	Name         string `json:"name,omitempty"`
	ReferredType string `json:"referredType,omitempty"`
}

// ItemRef attaches an optional entity reference to an interaction item.
type ItemRef struct {
	Role   string     `json:"role,omitempty"`
	Entity *EntityRef `json:"entity,omitempty"`
}

// InteractionItem is a discrete issue addressed within an interaction,
// individually trackable to resolution.
type InteractionItem struct {
	ID         string     `json:"id"`
	Reason     string     `json:"reason"`
	ItemDate   TimePeriod `json:"itemDate"`
	Resolution string     `json:"resolution,omitempty"`
	Status     ItemStatus `json:"status"`
	Item       *ItemRef   `json:"item,omitempty"`
}

// Validate enforces the item's required fields and status enum.
func (it InteractionItem) Validate() error {
	return validation.ValidateStruct(&it,
		validation.Field(&it.Reason, validation.Required),
		validation.Field(&it.ItemDate),
		validation.Field(&it.Status, validation.Required,
			validation.In(ItemStatusPending, ItemStatusInProgress, ItemStatusResolved, ItemStatusCancelled)),
	)
}

// Channel is the contact medium reference of a RelatedChannel entry.
type Channel struct {
	ID   string      `json:"id,omitempty"`
	Name ChannelName `json:"name"`
}

// Validate rejects channel names outside the declared enum. An empty name
// is allowed, matching the upstream schema.
func (c Channel) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.In(ChannelPhone, ChannelEmail, ChannelChat, ChannelStore, ChannelWeb, ChannelMobile, ChannelSocial)),
	)
}

// RelatedChannel records one medium through which the interaction occurred.
type RelatedChannel struct {
	Role    string  `json:"role,omitempty"`
	Channel Channel `json:"channel"`
}

// Validate cascades into the channel reference.
func (rc RelatedChannel) Validate() error {
	return validation.ValidateStruct(&rc,
		validation.Field(&rc.Channel),
	)
}

// AttachmentSize is a quantity pair (amount + unit) describing file size.
type AttachmentSize struct {
	Amount float64 `json:"amount,omitempty"`
	Units  string  `json:"units,omitempty"`
}

// Attachment is a file reference carried by an interaction record.
type Attachment struct {
	ID             string          `json:"id,omitempty"`
	Href           string          `json:"href,omitempty"`
	Name           string          `json:"name,omitempty"`
	Description    string          `json:"description,omitempty"`
	AttachmentType string          `json:"attachmentType,omitempty"`
	MimeType       string          `json:"mimeType,omitempty"`
	Size           *AttachmentSize `json:"size,omitempty"`
	URL            string          `json:"url,omitempty"`
}

// Note is a timestamped annotation appended to an interaction.
type Note struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
}

// Validate enforces the note's required text and author.
func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Text, validation.Required),
		validation.Field(&n.Author, validation.Required),
	)
}

// Interaction is the root record: one logged contact event between a
// customer and the servicing organization. Sequence fields preserve
// insertion order through store round-trips.
type Interaction struct {
	ID              string            `json:"id"`
	Href            string            `json:"href,omitempty"`
	InteractionDate TimePeriod        `json:"interactionDate"`
	Description     string            `json:"description"`
	Reason          string            `json:"reason"`
	Status          Status            `json:"status"`
	Direction       Direction         `json:"direction"`
	Priority        Priority          `json:"priority"`
	RelatedParty    []RelatedParty    `json:"relatedParty,omitempty"`
	InteractionItem []InteractionItem `json:"interactionItem,omitempty"`
	RelatedChannel  []RelatedChannel  `json:"relatedChannel,omitempty"`
	Attachment      []Attachment      `json:"attachment,omitempty"`
	Note            []Note            `json:"note,omitempty"`
	Category        string            `json:"category,omitempty"`
	SubCategory     string            `json:"subCategory,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Duration        *int              `json:"duration"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Validate enforces every required-field and enum constraint of the record,
// cascading into all nested sequences.
func (i *Interaction) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.ID, validation.Required),
		validation.Field(&i.InteractionDate),
		validation.Field(&i.Description, validation.Required),
		validation.Field(&i.Reason, validation.Required),
		validation.Field(&i.Status, validation.Required,
			validation.In(StatusOpened, StatusInProgress, StatusCompleted, StatusCancelled)),
		validation.Field(&i.Direction, validation.Required,
			validation.In(DirectionInbound, DirectionOutbound)),
		validation.Field(&i.Priority, validation.Required,
			validation.In(PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent)),
		validation.Field(&i.RelatedParty),
		validation.Field(&i.InteractionItem),
		validation.Field(&i.RelatedChannel),
		validation.Field(&i.Note),
	)
}

// DurationMinutes returns the interaction length in whole minutes, or nil
// when the end timestamp is not set.
func (i *Interaction) DurationMinutes() *int {
	if i.InteractionDate.EndDateTime == nil || i.InteractionDate.StartDateTime.IsZero() {
		return nil
	}
	m := int(math.Round(i.InteractionDate.EndDateTime.Sub(i.InteractionDate.StartDateTime).Minutes()))
	return &m
}
