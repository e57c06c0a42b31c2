package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestRunErrFrom(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		wantMsg  string
		wantCode int32
	}{
		{
			name:     "value RunErr",
			err:      entities.NewRunErr(404, "not found"),
			wantCode: 404,
			wantMsg:  "not found",
		},
		{
			name:     "pointer RunErr",
			err:      &entities.RunErr{Code: 401, Message: "denied"},
			wantCode: 401,
			wantMsg:  "denied",
		},
		{
			name:     "wrapped RunErr keeps code",
			err:      fmt.Errorf("lookup: %w", entities.NewRunErr(409, "conflict")),
			wantCode: 409,
			wantMsg:  "lookup: conflict",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantCode: entities.DefaultErrCode,
			wantMsg:  "boom",
		},
		{
			name:     "host error",
			err:      entities.ErrUnknownHost,
			wantCode: entities.DefaultErrCode,
			wantMsg:  entities.UnknownHostErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entities.RunErrFrom(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestSentinels(t *testing.T) {
	assert.Equal(t, "unknown error returned from host", entities.ErrUnknownHost.Error())
	assert.Equal(t, int32(-1), entities.ErrNoRunnable.Code)
	assert.Equal(t, "No runnable set", entities.ErrNoRunnable.Error())

	wrapped := fmt.Errorf("cache: %w", entities.NewHostErr(entities.UnknownHostErrorMessage))
	assert.ErrorIs(t, wrapped, entities.ErrUnknownHost)
}
