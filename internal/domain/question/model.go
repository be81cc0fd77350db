package question

import (
	"strings"
	"time"
)

// ClearedValue marks a result or prediction that was explicitly cleared.
const ClearedValue = "__CLEAR__"

// Question is one scorable item of a tournament table. Match questions carry
// both team names and a "<home>-<away>" result; everything else is a direct
// answer worth PossiblePoints.
type Question struct {
	ID             string
	TableID        string
	QuestionID     string
	QuestionText   string
	HomeTeam       string
	AwayTeam       string
	PossiblePoints int
	ValidationList string
	ActualResult   string
	CreatedDate    time.Time
	UpdatedDate    time.Time
}

func (q Question) IsMatch() bool {
	return strings.TrimSpace(q.HomeTeam) != "" && strings.TrimSpace(q.AwayTeam) != ""
}

func (q Question) HasResult() bool {
	return !IsUndecided(q.ActualResult)
}

// IsUndecided reports whether a stored value carries no decided answer.
func IsUndecided(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || v == ClearedValue
}

func (q Question) EntityID() string {
	return q.ID
}

func (q Question) Column(name string) (any, bool) {
	switch name {
	case "id":
		return q.ID, true
	case "table_id":
		return q.TableID, true
	case "question_id":
		return q.QuestionID, true
	case "question_text":
		return q.QuestionText, true
	case "home_team":
		return q.HomeTeam, true
	case "away_team":
		return q.AwayTeam, true
	case "possible_points":
		return q.PossiblePoints, true
	case "validation_list":
		return q.ValidationList, true
	case "actual_result":
		return q.ActualResult, true
	case "created_date":
		return q.CreatedDate, true
	case "updated_date":
		return q.UpdatedDate, true
	default:
		return nil, false
	}
}

func (q Question) WithIdentity(id string, created time.Time) Question {
	q.ID = id
	if q.CreatedDate.IsZero() {
		q.CreatedDate = created
	}
	if q.UpdatedDate.IsZero() {
		q.UpdatedDate = q.CreatedDate
	}
	return q
}
