package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o código curto alfanumérico usado como identificador
// público de projetos.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
