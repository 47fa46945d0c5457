package leads

import "time"

// Sender identifies who produced a conversation turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn is a single message in a lead's conversation history.
type Turn struct {
	Sender    Sender    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Lead is a prospective client and their qualification state. All
// attributes are optional; extraction fills them in as the conversation
// progresses and a populated attribute is never cleared back to empty.
type Lead struct {
	ID                string    `json:"id"`
	Name              string    `json:"name,omitempty"`
	Budget            string    `json:"budget,omitempty"`
	PreferredLocation string    `json:"preferredLocation,omitempty"`
	PropertyType      string    `json:"propertyType,omitempty"`
	History           []Turn    `json:"messageHistory"`
	CreatedAt         time.Time `json:"createdAt"`
}

// AppendTurn adds a message to the lead's history.
func (l *Lead) AppendTurn(sender Sender, message string, at time.Time) {
	l.History = append(l.History, Turn{
		Sender:    sender,
		Message:   message,
		Timestamp: at,
	})
}

// Qualified reports whether every qualification attribute is known.
func (l *Lead) Qualified() bool {
	return l.Name != "" && l.Budget != "" && l.PreferredLocation != "" && l.PropertyType != ""
}

// Clone returns a deep copy whose History slice is independent of the
// receiver's, so the copy can be read while the original is mutated.
func (l *Lead) Clone() *Lead {
	out := *l
	out.History = make([]Turn, len(l.History))
	copy(out.History, l.History)
	return &out
}
