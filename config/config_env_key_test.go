package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth0": map[string]any{
			"clientId": "",
			"baseUrl":  "",
		},
		"strava": map[string]any{
			"clientSecret": "",
			"perPage":      10,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH0_CLIENTID", want: "auth0.clientId"},
		{envKey: "AUTH0_BASEURL", want: "auth0.baseUrl"},
		{envKey: "STRAVA_CLIENTSECRET", want: "strava.clientSecret"},
		{envKey: "STRAVA_PERPAGE", want: "strava.perPage"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
