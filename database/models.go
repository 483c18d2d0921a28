package database

import "github.com/CrowderSoup/taskboard/board"

const documentVersion = 1

// BoardDocument is the JSON stored for each tenant.
type BoardDocument struct {
	Version int            `json:"version"`
	Board   board.Snapshot `json:"board"`
}
