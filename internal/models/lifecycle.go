package models

// Record statuses shared by campaigns, lists and templates.
const (
	RecordStatusCreated  = "created"
	RecordStatusArchived = "archived"
	RecordStatusDeleted  = "deleted"
)

// Sending statuses. The casing differs per entity and is stored verbatim.
const (
	CampaignStatusRunning = "Running"
	CampaignStatusStopped = "Stopped"

	ListStatusRunning = "running"
	ListStatusStopped = "Stopped"

	TemplateStatusPending = "Pending"
	TemplateStatusRunning = "Running"
	TemplateStatusStopped = "Stopped"
)

// Entity names used in audit rows, events and metrics.
const (
	EntityCampaign = "campaign"
	EntityList     = "list"
	EntityTemplate = "template"
	EntityContact  = "contact"
)

// validRecordTransitions maps from -> []to. Deleted is terminal.
var validRecordTransitions = map[string][]string{
	RecordStatusCreated:  {RecordStatusArchived, RecordStatusDeleted},
	RecordStatusArchived: {RecordStatusCreated, RecordStatusDeleted},
	RecordStatusDeleted:  {},
}

func isValidRecordTransition(from, to string) bool {
	allowed, ok := validRecordTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Transition describes one lifecycle operation independent of the entity.
// From lists the record statuses a row must be in for the operation to
// match it; rows in any other state are treated as absent.
type Transition struct {
	Action string
	From   []string
	To     string // target record status, empty keeps the current one
	Stop   bool   // forces the sending status to the entity's stopped value
}

var (
	TransitionArchive = Transition{
		Action: "archive",
		From:   []string{RecordStatusCreated},
		To:     RecordStatusArchived,
		Stop:   true,
	}
	TransitionRestore = Transition{
		Action: "restore",
		From:   []string{RecordStatusArchived},
		To:     RecordStatusCreated,
	}
	TransitionDelete = Transition{
		Action: "delete",
		From:   []string{RecordStatusCreated, RecordStatusArchived},
		To:     RecordStatusDeleted,
	}
	TransitionStop = Transition{
		Action: "stop",
		From:   []string{RecordStatusCreated, RecordStatusArchived},
		Stop:   true,
	}
)

// transitions is every lifecycle operation exposed by the API.
var transitions = []Transition{TransitionArchive, TransitionRestore, TransitionDelete, TransitionStop}

// StateChange is a Transition resolved for a concrete entity, ready to be
// applied by a store. Empty RecordStatus or Status means "leave unchanged".
type StateChange struct {
	From         []string
	RecordStatus string
	Status       string
}

// Resolve binds the transition to the stopped value of one entity.
func (t Transition) Resolve(stoppedStatus string) StateChange {
	ch := StateChange{From: t.From, RecordStatus: t.To}
	if t.Stop {
		ch.Status = stoppedStatus
	}
	return ch
}

// Matches reports whether a row in recordStatus is a valid source.
func (ch StateChange) Matches(recordStatus string) bool {
	for _, s := range ch.From {
		if s == recordStatus {
			return true
		}
	}
	return false
}

// VisibleRecordStatuses are the states an owner can still read or edit.
var VisibleRecordStatuses = []string{RecordStatusCreated, RecordStatusArchived}

func IsVisible(recordStatus string) bool {
	return recordStatus == RecordStatusCreated || recordStatus == RecordStatusArchived
}
