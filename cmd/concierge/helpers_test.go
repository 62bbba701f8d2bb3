package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/storage"
)

func TestParseContext(t *testing.T) {
	tests := []struct {
		want    *model.Context
		name    string
		raw     string
		wantErr bool
	}{
		{name: "empty", raw: "  ", want: nil},
		{name: "location", raw: `{"location":"10010"}`, want: &model.Context{Location: "10010"}},
		{
			name: "full",
			raw:  `{"budget":1200,"useCase":"gaming","urgency":"today"}`,
			want: &model.Context{Budget: 1200, UseCase: model.UseCaseGaming, Urgency: model.UrgencyToday},
		},
		{name: "malformed", raw: `{"budget":`, wantErr: true},
		{name: "negative budget", raw: `{"budget":-1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseContext(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextFromFlags(t *testing.T) {
	c, err := contextFromFlags(1500, "gaming", "laptops", "tomorrow")
	require.NoError(t, err)
	assert.Equal(t, model.Context{
		Budget:   1500,
		UseCase:  model.UseCaseGaming,
		Category: model.CategoryLaptops,
		Urgency:  model.UrgencyTomorrow,
	}, c)

	_, err = contextFromFlags(-1, "", "", "")
	assert.Error(t, err)

	_, err = contextFromFlags(0, "", "", "yesterday")
	assert.Error(t, err)
}

func TestExtractCommand(t *testing.T) {
	cmd := extractCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"gaming", "laptop", "under", "$1,200", "--context", `{"location":"10017"}`})

	require.NoError(t, cmd.Execute())

	var got model.Context
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, model.Context{
		Budget:   1200,
		UseCase:  model.UseCaseGaming,
		Category: model.CategoryLaptops,
		Location: "10017",
	}, got)
}

func TestRecommendCommand_JSON(t *testing.T) {
	cmd := recommendCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--use-case", "gaming", "--budget", "1500", "--json"})

	require.NoError(t, cmd.Execute())

	var bundles []model.Bundle
	require.NoError(t, json.Unmarshal(out.Bytes(), &bundles))
	require.Len(t, bundles, 2)
	assert.Equal(t, "gaming-laptop-bundle", bundles[0].ID)
}

func TestShowBundleCommand(t *testing.T) {
	cmd := showBundleCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"gaming-laptop-bundle"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Portable Gaming Rig")

	cmd = showBundleCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"nope"})
	assert.Error(t, cmd.Execute())
}

func TestInitStorage_Memory(t *testing.T) {
	viper.Set("sessions.backend", storage.BackendMemory)
	t.Cleanup(func() { viper.Set("sessions.backend", nil) })

	store, err := initStorage(t.Context())
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStorage{}, store)
	require.NoError(t, store.Close())
}

func TestSessionsPersist(t *testing.T) {
	t.Cleanup(func() { viper.Set("sessions.backend", nil) })

	tests := []struct {
		backend string
		want    bool
	}{
		{backend: storage.BackendMemory, want: false},
		{backend: storage.BackendSQLite, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			viper.Set("sessions.backend", tt.backend)
			assert.Equal(t, tt.want, sessionsPersist())
		})
	}
}

func TestShowBundleCommand_Availability(t *testing.T) {
	t.Setenv("BESTBUY_API_KEY", "")
	viper.Set("bestbuy.api_key", "")

	cmd := showBundleCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"gaming-laptop-bundle", "--store", "1118"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Everything is ready for pickup at store 1118")
}
