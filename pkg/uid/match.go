package uid

import "github.com/google/uuid"

// GenerateMatchID returns a random unique identifier for a match record.
func GenerateMatchID() string {
	return uuid.NewString()
}

// IsMatchID reports whether id has the shape produced by GenerateMatchID.
func IsMatchID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
