package models

import "github.com/google/uuid"

// newID gera a chave opaca usada por todos os registros.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
