package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-presence-api/internal/interface/api/rest/dto/auth"
	"user-presence-api/internal/interface/api/rest/dto/user"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      any
		wantKeys []string
	}{
		{
			name: "valid create with one letter password",
			req:  user.CreateRequest{Username: "ada", Email: "ada@x.io", Password: "p"},
		},
		{
			name:     "missing fields use form names",
			req:      user.CreateRequest{},
			wantKeys: []string{"username", "email", "password"},
		},
		{
			name:     "bad email",
			req:      user.CreateRequest{Username: "ada", Email: "nope", Password: "p"},
			wantKeys: []string{"email"},
		},
		{
			name: "empty update is valid",
			req:  user.UpdateRequest{},
		},
		{
			name:     "login uses json names",
			req:      auth.LoginRequest{},
			wantKeys: []string{"username", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.req)
			if len(tt.wantKeys) == 0 {
				assert.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantKeys))
			for _, k := range tt.wantKeys {
				assert.Contains(t, errs, k)
			}
		})
	}
}

func TestParseUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := ParseUUIDs(a.String() + ", " + b.String() + ",," + a.String())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	ids, err = ParseUUIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseUUIDs("x,y")
	require.Error(t, err)
}
