package team

import "time"

// Team is a named group owned by exactly one manager. Members point back at
// it through users.team_id.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerID string    `json:"managerId"`
	CreatedAt time.Time `json:"createdAt"`
}
