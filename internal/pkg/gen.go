package pkg

import (
	"github.com/google/uuid"
)

const (
	GameIDLength = 20

	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateGameID - samples GameIDLength distinct characters from the alphanumeric alphabet.
func GenerateGameID(rng Random) string {
	alphabet := []byte(gameIDAlphabet)

	// partial Fisher-Yates: the first GameIDLength positions end up as the sample
	for i := 0; i < GameIDLength; i++ {
		j := i + rng.Intn(len(alphabet)-i)
		alphabet[i], alphabet[j] = alphabet[j], alphabet[i]
	}

	return string(alphabet[:GameIDLength])
}

// GenerateConnID - generates an id used to correlate log lines of one connection.
func GenerateConnID() string {
	return uuid.NewString()
}
