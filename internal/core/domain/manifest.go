package domain

// Manifest describes a split operation. It is embedded in every archive
// and is the only durable record of the run.
type Manifest struct {
	Source        ManifestSource  `json:"source"`
	CreatedAt     string          `json:"created_at"`
	Mode          Mode            `json:"mode"`
	Params        Params          `json:"params"`
	SkippedReason string          `json:"skipped_reason,omitempty"`
	Pieces        []ManifestPiece `json:"pieces"`
}

// ManifestSource records the provenance of the split text.
type ManifestSource struct {
	Filename    string `json:"filename"`
	SHA256      string `json:"sha256"`
	LengthChars int    `json:"length_chars"`
}

// ManifestPiece records one piece without its content.
type ManifestPiece struct {
	ID          string `json:"id"`
	LengthChars int    `json:"length_chars"`
}

// Skipped reports whether splitting was suppressed by the threshold policy.
func (m *Manifest) Skipped() bool {
	return m.SkippedReason != ""
}

// ManifestTimeFormat renders created_at with microseconds and an explicit offset.
const ManifestTimeFormat = "2006-01-02T15:04:05.000000-07:00"
