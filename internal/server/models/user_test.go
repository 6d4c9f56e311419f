package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PublicOmitsHash(t *testing.T) {
	u := &User{ID: "1", Name: "A", Email: "a@x.com", PasswordHash: "$2a$10$secret", Role: "user"}

	b, err := json.Marshal(u.Public())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"1","name":"A","email":"a@x.com","role":"user"}`, string(b))
	assert.NotContains(t, string(b), "secret")
}
