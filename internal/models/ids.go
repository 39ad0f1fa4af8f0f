package models

import "github.com/google/uuid"

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func strPtr(s string) *string {
	return &s
}
