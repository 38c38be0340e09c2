package entities

import "time"

// Sentence is a single utterance attributed to a speaker
type Sentence struct {
	SpeakerName string `json:"speaker_name"`
	Text        string `json:"text"`
}

// Transcript is a meeting transcript as obtained from the source.
// Immutable once fetched; owned by the run that fetched it.
type Transcript struct {
	ID           string     `json:"id"`
	MeetingTitle string     `json:"meeting_title"`
	Participants []string   `json:"participants"`
	Text         string     `json:"text"`
	Sentences    []Sentence `json:"sentences,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}
