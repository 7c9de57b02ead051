package config

import (
	"errors"
	"os"
	"strings"
)

// Config holds all runtime options. Values are read once at startup and are
// immutable afterwards.
type Config struct {
	ListenAddr string

	// BaseURL is the Open-Xchange instance URL used for deep links and the
	// generator object.
	BaseURL string

	// ActivityServiceURL is the remote social-activity endpoint activities
	// are posted to.
	ActivityServiceURL string

	DB struct {
		DSN string
	}

	SendActivities     bool
	CalendarActivities bool
	ContactActivities  bool
	TaskActivities     bool
	RSVPActivities     bool

	SendInvites      bool
	ContactDeletions bool

	FilterUnnamed        bool
	FilterRSVPUpdates    bool
	FilterPrivateFolders bool
	FilterSystemFolders  bool

	AuditLogEnabled bool
	AuditLogFile    string
	LogActivities   bool

	PrometheusEnabled bool
	TrustedProxies    []string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ListenAddr = getenvDefault("APP_LISTEN_ADDR", ":8080")
	cfg.BaseURL = os.Getenv("APP_BASE_URL")
	cfg.ActivityServiceURL = os.Getenv("APP_ACTIVITY_SERVICE_URL")
	cfg.DB.DSN = os.Getenv("APP_DB_DSN")

	cfg.SendActivities = getenvBool("APP_SEND_ACTIVITIES", true)
	cfg.CalendarActivities = getenvBool("APP_CALENDAR_ACTIVITIES", true)
	cfg.ContactActivities = getenvBool("APP_CONTACT_ACTIVITIES", true)
	cfg.TaskActivities = getenvBool("APP_TASK_ACTIVITIES", true)
	cfg.RSVPActivities = getenvBool("APP_RSVP_ACTIVITIES", false)

	cfg.SendInvites = getenvBool("APP_SEND_INVITES", true)
	cfg.ContactDeletions = getenvBool("APP_CONTACT_DELETIONS", false)

	cfg.FilterUnnamed = getenvBool("APP_FILTER_UNNAMED", true)
	cfg.FilterRSVPUpdates = getenvBool("APP_FILTER_RSVP_UPDATES", true)
	cfg.FilterPrivateFolders = getenvBool("APP_FILTER_PRIVATE_FOLDERS", false)
	cfg.FilterSystemFolders = getenvBool("APP_FILTER_SYSTEM_FOLDERS", true)

	cfg.AuditLogEnabled = getenvBool("APP_AUDIT_LOG_ENABLED", false)
	cfg.AuditLogFile = getenvDefault("APP_AUDIT_LOG_FILE", "oxstream-audit.log")
	cfg.LogActivities = getenvBool("APP_LOG_ACTIVITIES", false)

	cfg.PrometheusEnabled = getenvBool("APP_PROMETHEUS_ENDPOINT_ENABLED", false)
	cfg.TrustedProxies = getenvList("APP_TRUSTED_PROXIES")

	if cfg.BaseURL == "" {
		return nil, errors.New("APP_BASE_URL is required")
	}
	if cfg.ActivityServiceURL == "" {
		return nil, errors.New("APP_ACTIVITY_SERVICE_URL is required")
	}
	if cfg.DB.DSN == "" {
		return nil, errors.New("APP_DB_DSN is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvList(key string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return nil
}
