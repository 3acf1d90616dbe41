package models

import "time"

const SenderUser = "user"

type MessageRecord struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type CreateMessageRequest struct {
	Text   string `json:"text" validate:"required"`
	Sender string `json:"sender" validate:"omitempty,max=50"`
}

func (r *CreateMessageRequest) ApplyDefaults() {
	if r.Sender == "" {
		r.Sender = SenderUser
	}
}

func MessageFromRecord(r MessageRecord) Message {
	return Message{ID: r.ID, Text: r.Text, Sender: r.Sender, Timestamp: r.Timestamp}
}

func (m Message) Record() MessageRecord {
	return MessageRecord{ID: m.ID, Text: m.Text, Sender: m.Sender, Timestamp: m.Timestamp}
}
