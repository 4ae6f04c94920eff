package config

import "testing"

func validConfig() Config {
	return Config{
		Addr:                ":8080",
		DatabaseURL:         "postgres://localhost/crewhub",
		Environment:         "development",
		SalaryPeriod:        SalaryPeriodMonthly,
		DefaultMonthlyHours: 160,
		MaxBodyBytes:        1048576,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, true},
		{"bad salary period", func(c *Config) { c.SalaryPeriod = "weekly" }, true},
		{"annual salary period", func(c *Config) { c.SalaryPeriod = SalaryPeriodAnnual }, false},
		{"zero hours", func(c *Config) { c.DefaultMonthlyHours = 0 }, true},
		{"tiny body limit", func(c *Config) { c.MaxBodyBytes = 100 }, true},
		{"production without jwt secret", func(c *Config) { c.Environment = "production" }, true},
		{"production configured", func(c *Config) {
			c.Environment = "production"
			c.JWTSecret = "long-random-secret"
			c.RunSeed = false
		}, false},
		{"seed admin without any password", func(c *Config) {
			c.RunSeed = true
			c.SeedAdminEmail = "admin@example.com"
		}, true},
		{"seed admin with default password", func(c *Config) {
			c.RunSeed = true
			c.SeedAdminEmail = "admin@example.com"
			c.DefaultUserPassword = "change-me"
		}, false},
		{"jira url without credentials", func(c *Config) { c.JiraBaseURL = "https://x.atlassian.net" }, true},
		{"jira fully configured", func(c *Config) {
			c.JiraBaseURL = "https://x.atlassian.net"
			c.JiraEmail = "bot@example.com"
			c.JiraAPIToken = "token"
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
