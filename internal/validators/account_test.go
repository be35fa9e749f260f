package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestAccountValidator_Register(t *testing.T) {
	v := NewAccountValidator()
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr error
	}{
		{name: "valid", req: models.RegisterRequest{Username: "alice_01", Password: "s3cret!pw"}},
		{name: "short username", req: models.RegisterRequest{Username: "al", Password: "s3cret!pw"}, wantErr: ErrInvalidUsername},
		{name: "username with dash", req: models.RegisterRequest{Username: "al-ice", Password: "s3cret!pw"}, wantErr: ErrInvalidUsername},
		{name: "guest is reserved", req: models.RegisterRequest{Username: "Guest", Password: "s3cret!pw"}, wantErr: ErrReservedUsername},
		{name: "short password", req: models.RegisterRequest{Username: "alice", Password: "s3!"}, wantErr: ErrPasswordTooShort},
		{name: "no digit", req: models.RegisterRequest{Username: "alice", Password: "secret!pw"}, wantErr: ErrPasswordNoDigit},
		{name: "no special", req: models.RegisterRequest{Username: "alice", Password: "s3cretpw"}, wantErr: ErrPasswordNoSpecial},
		{name: "space", req: models.RegisterRequest{Username: "alice", Password: "s3cret !pw"}, wantErr: ErrPasswordHasSpace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), &tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountValidator_LoginSkipsPolicyChecks(t *testing.T) {
	v := NewAccountValidator()

	assert.NoError(t, v.Validate(context.Background(), models.LoginRequest{Username: "alice", Password: "weak"}))
	assert.NoError(t, v.Validate(context.Background(), models.LoginRequest{GuestLogin: true}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.LoginRequest{Username: "alice"}), ErrEmptyPassword)
}

func TestAccountValidator_FieldScoping(t *testing.T) {
	v := NewAccountValidator()
	req := models.RegisterRequest{Username: "guest", Password: "x"}

	assert.NoError(t, v.Validate(context.Background(), req, FieldUsername))
	assert.ErrorIs(t, v.Validate(context.Background(), req, "nickname"), ErrUnknownField)
}

func TestAccountValidator_OtherModels(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.GenerateTokenRequest{Username: "alice", Password: "p", ExpireHours: 0}), ErrInvalidExpireHours)
	assert.NoError(t, v.Validate(ctx, models.GenerateTokenRequest{Username: "alice", Password: "p", ExpireHours: 24}))

	assert.ErrorIs(t, v.Validate(ctx, models.UpdateUserRequest{Groups: []string{"user", " "}}), ErrInvalidGroups)
	assert.NoError(t, v.Validate(ctx, models.UpdateUserRequest{SafetyCheck: ptr(false)}))

	assert.ErrorIs(t, v.Validate(ctx, models.UserEnvRequest{Action: "nuke"}), ErrUnknownAction)
	assert.ErrorIs(t, v.Validate(ctx, models.UserEnvRequest{Action: models.EnvActionList, Username: "../etc"}), ErrInvalidUsername)
	assert.NoError(t, v.Validate(ctx, models.UserEnvRequest{Action: models.EnvActionPurge, Username: "bob"}))

	assert.ErrorIs(t, v.Validate(ctx, models.SafetyTagRequest{}), ErrEmptyPath)
	assert.ErrorIs(t, v.Validate(ctx, models.SafetyTagRequest{Path: "a.png", Score: ptr(1.5)}), ErrInvalidScore)

	assert.ErrorIs(t, v.Validate(ctx, models.PromptRequest{Prompt: json.RawMessage("null")}), ErrEmptyPrompt)
	assert.NoError(t, v.Validate(ctx, models.PromptRequest{Prompt: json.RawMessage(`{"1":{}}`)}))

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}
