package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// binding ties a dot-notation file key to its environment variable and the
// settings field it populates.
type binding struct {
	key string
	env string
	set func(s *Settings, v string) error
}

func str(f func(s *Settings) *string) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		*f(s) = v
		return nil
	}
}

var bindings = []binding{
	{"datastore.uri", "DATASTORE_URI", str(func(s *Settings) *string { return &s.Datastore.URI })},
	{"datastore.db", "DATASTORE_DB", str(func(s *Settings) *string { return &s.Datastore.Database })},
	{"reddit.client_id", "REDDIT_CLIENT_ID", str(func(s *Settings) *string { return &s.Reddit.ClientID })},
	{"reddit.client_secret", "REDDIT_CLIENT_SECRET", str(func(s *Settings) *string { return &s.Reddit.ClientSecret })},
	{"reddit.user_agent", "REDDIT_USER_AGENT", str(func(s *Settings) *string { return &s.Reddit.UserAgent })},
	{"youtube.api_key", "YOUTUBE_API_KEY", str(func(s *Settings) *string { return &s.YouTube.APIKey })},
	{"twitter.bearer_token", "TWITTER_BEARER_TOKEN", str(func(s *Settings) *string { return &s.Twitter.BearerToken })},
	{"instagram.session_id", "INSTAGRAM_SESSION_ID", str(func(s *Settings) *string { return &s.Instagram.SessionID })},
	{"instagram.app_id", "INSTAGRAM_APP_ID", str(func(s *Settings) *string { return &s.Instagram.AppID })},
	{"data_dir", "INSIGHT_DATA_DIR", str(func(s *Settings) *string { return &s.DataDir })},
	{"http_timeout", "INSIGHT_HTTP_TIMEOUT", func(s *Settings, v string) error {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("http_timeout: %w", err)
		}
		s.HTTPTimeout = d
		return nil
	}},
}

// Load resolves settings from defaults, then the file at path (skipped when
// empty), then the environment. getenv is usually os.Getenv.
func Load(path string, getenv func(string) string) (*Settings, error) {
	s := Defaults()

	if path != "" {
		values, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for _, b := range bindings {
			if v, ok := values[b.key]; ok && v != "" {
				if err := b.set(s, v); err != nil {
					return nil, fmt.Errorf("config file %s: %w", path, err)
				}
			}
		}
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	for _, b := range bindings {
		if v := strings.TrimSpace(getenv(b.env)); v != "" {
			if err := b.set(s, v); err != nil {
				return nil, fmt.Errorf("%s: %w", b.env, err)
			}
		}
	}
	return s, nil
}

// readFile decodes a TOML or YAML file into dot-notation string values.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("config %s: unsupported format (use .toml or .yaml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	flat := make(map[string]string)
	flattenMap(raw, "", flat)
	return flat, nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": "1"}.
func flattenMap(m map[string]any, prefix string, out map[string]string) {
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			flattenMap(nested, fullKey, out)
			continue
		}
		out[fullKey] = fmt.Sprint(value)
	}
}

// parseDuration accepts Go durations ("45s") or whole seconds ("45").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
