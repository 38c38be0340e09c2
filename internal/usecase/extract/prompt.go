package extract

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// Identity names the agent's user so the model can resolve first-person
// ownership in the transcript. Zero value means no identity is known.
type Identity struct {
	Name  string
	Email string
}

func (id Identity) String() string {
	switch {
	case id.Name != "" && id.Email != "":
		return fmt.Sprintf("%s <%s>", id.Name, id.Email)
	case id.Name != "":
		return id.Name
	default:
		return id.Email
	}
}

// BuildPrompt renders the extraction prompt for a transcript. The model is
// instructed to answer with a single JSON object and nothing else; the
// validator still copes when it does not.
func BuildPrompt(t *entities.Transcript, self Identity) string {
	var b strings.Builder

	b.WriteString("You are an assistant that converts a meeting transcript into structured follow-up items.\n\n")
	b.WriteString("Return a single valid JSON object with exactly these keys:\n")
	b.WriteString(`  "summary": short summary of the meeting (string)` + "\n")
	b.WriteString(`  "action_items": array of {"description": string, "owner": string (optional), "due_date": "YYYY-MM-DD" (optional)}` + "\n")
	b.WriteString(`  "follow_up_requested": true when a follow-up meeting was asked for (boolean)` + "\n\n")
	b.WriteString("Do not wrap the JSON in markdown or add any other text.\n\n")

	fmt.Fprintf(&b, "Meeting: %s\n", t.MeetingTitle)
	if len(t.Participants) > 0 {
		fmt.Fprintf(&b, "Participants: %s\n", strings.Join(t.Participants, ", "))
	}
	if who := self.String(); who != "" {
		fmt.Fprintf(&b, "These notes belong to %s; when the transcript says \"I\" or \"me\", that is the owner.\n", who)
	}
	b.WriteString("\nTranscript:\n")
	b.WriteString(t.Text)

	return b.String()
}
