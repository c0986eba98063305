package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"api": map[string]any{
			"baseUrl": "",
		},
		"auth": map[string]any{
			"refreshInterval": "27m",
		},
		"secureStore": map[string]any{
			"path": "",
		},
		"report": map[string]any{
			"detailBaseUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "API_BASEURL", want: "api.baseUrl"},
		{envKey: "AUTH_REFRESHINTERVAL", want: "auth.refreshInterval"},
		{envKey: "SECURESTORE_PATH", want: "secureStore.path"},
		{envKey: "REPORT_DETAILBASEURL", want: "report.detailBaseUrl"},
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
