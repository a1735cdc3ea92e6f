package models

// LevelDetails is one catalog record for a workshop candidate. Title,
// Filename and Creator are optional in the upstream response; records missing
// Creator or Filename are excluded from ingestion.
type LevelDetails struct {
	PublishedFileID string
	Title           *string
	Filename        *string
	Creator         *string
}

// Ingestable reports whether the record carries enough identity to derive a
// leaderboard name.
func (d *LevelDetails) Ingestable() bool {
	return d.Creator != nil && d.Filename != nil
}
