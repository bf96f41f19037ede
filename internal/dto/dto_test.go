package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

func TestUserDTOHasNoPassword(t *testing.T) {
	u := &models.User{ID: "u-1", Email: "a@b.com", PasswordHash: "$2a$10$hash", Role: "client", Active: true}

	b, err := json.Marshal(NewUserDTO(u))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(b, &payload))
	assert.Equal(t, "client", payload["role"])
	assert.NotContains(t, payload, "password")
	assert.NotContains(t, payload, "password_hash")
	assert.NotContains(t, string(b), "$2a$10$hash")
}

func TestHairProfileDTOAttributes(t *testing.T) {
	p := &models.HairProfile{ClientID: "c-1", Attributes: `{"curl":"3A"}`}
	assert.Equal(t, map[string]string{"curl": "3A"}, NewHairProfileDTO(p).Attributes)

	p.Attributes = ""
	assert.Empty(t, NewHairProfileDTO(p).Attributes)
}
