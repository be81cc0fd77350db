package prediction

import (
	"strings"
	"time"

	"github.com/riskibarqy/toto-league/internal/domain/question"
)

// Prediction is one participant answer for one question. Several rows may
// exist for the same pair; the most recent one is authoritative.
type Prediction struct {
	ID              string
	QuestionID      string
	ParticipantName string
	TextPrediction  string
	CreatedDate     time.Time
}

func (p Prediction) IsCleared() bool {
	return question.IsUndecided(p.TextPrediction)
}

func (p Prediction) EntityID() string {
	return p.ID
}

func (p Prediction) Column(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "question_id":
		return p.QuestionID, true
	case "participant_name":
		return p.ParticipantName, true
	case "text_prediction":
		return p.TextPrediction, true
	case "created_date":
		return p.CreatedDate, true
	default:
		return nil, false
	}
}

func (p Prediction) WithIdentity(id string, created time.Time) Prediction {
	p.ID = id
	if p.CreatedDate.IsZero() {
		p.CreatedDate = created
	}
	return p
}

type key struct {
	questionID  string
	participant string
}

// Latest keeps the newest prediction per (question, participant). Rows with
// equal timestamps resolve to the one seen last. Output follows the order in
// which each pair first appeared.
func Latest(items []Prediction) []Prediction {
	index := make(map[key]int, len(items))
	out := make([]Prediction, 0, len(items))
	for _, item := range items {
		item.ParticipantName = strings.TrimSpace(item.ParticipantName)
		k := key{questionID: item.QuestionID, participant: item.ParticipantName}
		pos, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, item)
			continue
		}
		if !item.CreatedDate.Before(out[pos].CreatedDate) {
			out[pos] = item
		}
	}
	return out
}

// ByQuestion maps question record ids to prediction text for one participant.
func ByQuestion(items []Prediction, participant string) map[string]string {
	participant = strings.TrimSpace(participant)
	out := make(map[string]string)
	for _, item := range Latest(items) {
		if item.ParticipantName != participant {
			continue
		}
		out[item.QuestionID] = item.TextPrediction
	}
	return out
}
