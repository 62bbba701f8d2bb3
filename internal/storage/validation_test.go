package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/tech-concierge/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "abc", wantErr: false},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: " \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateSession(t *testing.T) {
	tests := []struct {
		session *model.Session
		wantErr error
		name    string
	}{
		{
			name:    "nil session",
			session: nil,
			wantErr: ErrNilParameter,
		},
		{
			name:    "missing ID",
			session: &model.Session{},
			wantErr: ErrInvalidSession,
		},
		{
			name: "unknown role",
			session: &model.Session{
				ID:       "s1",
				Messages: []model.Message{{Role: "robot", Content: "beep"}},
			},
			wantErr: ErrInvalidSession,
		},
		{
			name: "valid session",
			session: &model.Session{
				ID: "s1",
				Messages: []model.Message{
					{Role: model.RoleUser, Content: "hi"},
					{Role: model.RoleAssistant, Content: "hello"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSession(tt.session)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateSession() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateSession() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecommendations(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		recs    []model.Recommendation
	}{
		{name: "nil slice", recs: nil, wantErr: ErrNilParameter},
		{name: "empty slice", recs: []model.Recommendation{}, wantErr: ErrEmptySlice},
		{
			name:    "missing bundle",
			recs:    []model.Recommendation{{SessionID: "s1"}},
			wantErr: ErrInvalidRecommendation,
		},
		{
			name:    "negative price",
			recs:    []model.Recommendation{{SessionID: "s1", BundleID: "b", Price: -1}},
			wantErr: ErrInvalidRecommendation,
		},
		{
			name: "valid",
			recs: []model.Recommendation{{SessionID: "s1", BundleID: "b", Price: 10, Rank: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecommendations(tt.recs)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateRecommendations() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRecommendations() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
