package models

import (
	"testing"
	"time"
)

func validInteraction() *Interaction {
	return &Interaction{
		ID: "int-1",
		InteractionDate: TimePeriod{
			StartDateTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		Description: "billing complaint",
		Reason:      "customer called about invoice",
		Status:      StatusOpened,
		Direction:   DirectionInbound,
		Priority:    PriorityMedium,
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validInteraction().Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := map[string]func(*Interaction){
		"description": func(i *Interaction) { i.Description = "" },
		"reason":      func(i *Interaction) { i.Reason = "" },
		"direction":   func(i *Interaction) { i.Direction = "" },
		"start date":  func(i *Interaction) { i.InteractionDate.StartDateTime = time.Time{} },
	}
	for name, mutate := range cases {
		i := validInteraction()
		mutate(i)
		if err := i.Validate(); err == nil {
			t.Errorf("missing %s should fail validation", name)
		}
	}
}

func TestValidate_EnumViolations(t *testing.T) {
	cases := map[string]func(*Interaction){
		"status":    func(i *Interaction) { i.Status = "open" },
		"direction": func(i *Interaction) { i.Direction = "sideways" },
		"priority":  func(i *Interaction) { i.Priority = "extreme" },
	}
	for name, mutate := range cases {
		i := validInteraction()
		mutate(i)
		if err := i.Validate(); err == nil {
			t.Errorf("invalid %s enum should fail validation", name)
		}
	}
}

func TestValidate_RelatedParty(t *testing.T) {
	i := validInteraction()
	i.RelatedParty = []RelatedParty{{
		Role: PartyRoleCustomer,
		PartyOrPartyRole: PartyRef{
			ID:           "cust-1",
			Name:         "Jane Doe",
			ReferredType: ReferredIndividual,
		},
	}}
	if err := i.Validate(); err != nil {
		t.Fatalf("valid related party rejected: %v", err)
	}

	// Missing name in an entry.
	i.RelatedParty[0].PartyOrPartyRole.Name = ""
	if err := i.Validate(); err == nil {
		t.Error("related party without name should fail validation")
	}

	// Role outside the enum.
	i.RelatedParty[0].PartyOrPartyRole.Name = "Jane Doe"
	i.RelatedParty[0].Role = "manager"
	if err := i.Validate(); err == nil {
		t.Error("related party with unknown role should fail validation")
	}
}

func TestValidate_ChannelEnum(t *testing.T) {
	i := validInteraction()
	i.RelatedChannel = []RelatedChannel{{Channel: Channel{Name: "fax"}}}
	if err := i.Validate(); err == nil {
		t.Error("unknown channel name should fail validation")
	}

	i.RelatedChannel = []RelatedChannel{{Channel: Channel{Name: ChannelPhone}}}
	if err := i.Validate(); err != nil {
		t.Errorf("valid channel rejected: %v", err)
	}
}

func TestValidate_InteractionItem(t *testing.T) {
	i := validInteraction()
	i.InteractionItem = []InteractionItem{{
		ID:       "item-1",
		Reason:   "invoice dispute",
		ItemDate: TimePeriod{StartDateTime: time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)},
		Status:   ItemStatusPending,
	}}
	if err := i.Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}

	i.InteractionItem[0].Reason = ""
	if err := i.Validate(); err == nil {
		t.Error("item without reason should fail validation")
	}
}

func TestDurationMinutes(t *testing.T) {
	i := validInteraction()
	if d := i.DurationMinutes(); d != nil {
		t.Errorf("duration without end = %v, want nil", *d)
	}

	end := i.InteractionDate.StartDateTime.Add(45 * time.Minute)
	i.InteractionDate.EndDateTime = &end
	d := i.DurationMinutes()
	if d == nil || *d != 45 {
		t.Errorf("duration = %v, want 45", d)
	}

	// Sub-minute remainders round to the nearest whole minute.
	end = i.InteractionDate.StartDateTime.Add(45*time.Minute + 40*time.Second)
	i.InteractionDate.EndDateTime = &end
	d = i.DurationMinutes()
	if d == nil || *d != 46 {
		t.Errorf("rounded duration = %v, want 46", d)
	}
}
