package store

// Scene statuses. The schema stores plain text; the store validates
// writes against this set.
const (
	SceneStatusPending    = "pending"
	SceneStatusInProgress = "in-progress"
	SceneStatusComplete   = "complete"
	SceneStatusFailed     = "failed"
)

// Video job statuses. Complete and failed are terminal: once a job
// reaches one of them its completed_at is fixed.
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusComplete   = "complete"
	JobStatusFailed     = "failed"
)

var sceneStatuses = map[string]bool{
	SceneStatusPending:    true,
	SceneStatusInProgress: true,
	SceneStatusComplete:   true,
	SceneStatusFailed:     true,
}

var jobStatuses = map[string]bool{
	JobStatusQueued:     true,
	JobStatusProcessing: true,
	JobStatusComplete:   true,
	JobStatusFailed:     true,
}

// JobStatusTerminal reports whether a video job status is terminal.
func JobStatusTerminal(status string) bool {
	return status == JobStatusComplete || status == JobStatusFailed
}

// Project represents a creative work unit
type Project struct {
	ID        string
	Name      string
	Genre     string
	Synopsis  string
	Tone      string
	CreatedAt string
	UpdatedAt string
}

// Character represents a reusable persona owned by a project
type Character struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	PhotoData   string
	CreatedAt   string
}

// Scene represents one ordered unit of a project's storyboard
type Scene struct {
	ID             string
	ProjectID      string
	SceneNumber    int
	Title          string
	Description    string
	Prompt         string
	CameraAngle    string
	Lighting       string
	Duration       int
	Dialog         string
	CharactersJSON string
	Status         string
	VideoURL       string
	SortOrder      int
	CreatedAt      string
}

// VideoJob records one invocation of an external generation provider.
// JobID is the provider's own tracking identifier, distinct from ID.
type VideoJob struct {
	ID          string
	SceneID     string
	Provider    string
	JobID       string
	Status      string
	VideoURL    string
	Cost        float64
	StartedAt   string
	CompletedAt string // empty until the job reaches a terminal status
}
