package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Artifact type tags for the files this system registers against a job.
const (
	ArtifactTypeSlidesPDF = "slides_pdf"
	ArtifactTypeAudioZip  = "audio_zip"
	ArtifactTypeVideoMP4  = "video_mp4"
)

// MetadataMap stores arbitrary key-value artifact metadata as JSON text.
type MetadataMap map[string]string

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the map.
//   - error: non-nil if marshaling fails.
func (m MetadataMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (m *MetadataMap) Scan(value interface{}) error {
	if value == nil {
		*m = MetadataMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan MetadataMap")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, m)
}

// Artifact is a durable input or output file registered against a job.
// Artifacts are append-only: never updated, never deleted.
type Artifact struct {
	ID           string      `gorm:"type:text;primaryKey" json:"id"`
	JobID        string      `gorm:"type:text;not null;index" json:"job_id"`
	ArtifactType string      `gorm:"type:text;not null" json:"artifact_type"`
	StorageURI   string      `gorm:"type:text;not null" json:"storage_uri"`
	Metadata     MetadataMap `gorm:"type:text" json:"metadata"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TableName returns the database table name for Artifact.
func (Artifact) TableName() string {
	return "job_artifacts"
}
