package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	idLength   = 6
)

// GenerateID gera IDs curtos para execuções de ingestão e contas, sem caracteres ambíguos (0/O, 1/l/I)
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
