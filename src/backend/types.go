package backend

// ModelsSubdir is the directory under the backup root that holds all
// model snapshots: <root>/models/<name>/<timestamp>/.
const ModelsSubdir = "models"

// Snapshot represents a single recorded backup discovered in a store.
type Snapshot struct {
	Name      string // artifact name in directory-safe form
	Timestamp string // YYYYMMDDThhmmssZ
	Path      string // absolute filesystem path to the snapshot directory
}

// Store defines read-only listing of recorded snapshots.
type Store interface {
	List() ([]Snapshot, error)
	ListModel(name string) ([]Snapshot, error)
}
