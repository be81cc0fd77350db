package ranking

import "time"

// Ranking is the persisted leaderboard row of one participant.
type Ranking struct {
	ID               string
	ParticipantName  string
	CurrentScore     int
	CurrentPosition  int
	PreviousScore    int
	PreviousPosition int
	ScoreChange      int
	PositionChange   int
	LastUpdated      time.Time
	CreatedDate      time.Time
}

func (r Ranking) EntityID() string {
	return r.ID
}

func (r Ranking) Column(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "participant_name":
		return r.ParticipantName, true
	case "current_score":
		return r.CurrentScore, true
	case "current_position":
		return r.CurrentPosition, true
	case "previous_score":
		return r.PreviousScore, true
	case "previous_position":
		return r.PreviousPosition, true
	case "score_change":
		return r.ScoreChange, true
	case "position_change":
		return r.PositionChange, true
	case "last_updated":
		return r.LastUpdated, true
	case "created_date":
		return r.CreatedDate, true
	default:
		return nil, false
	}
}

func (r Ranking) WithIdentity(id string, created time.Time) Ranking {
	r.ID = id
	if r.CreatedDate.IsZero() {
		r.CreatedDate = created
	}
	return r
}
