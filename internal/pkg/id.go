package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - id stored in the user_session cookie.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

func GenerateGameID() string {
	return uuid.NewString()
}
