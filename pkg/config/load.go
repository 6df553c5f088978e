package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves environment variables during expansion.
type LookupFunc func(key string) (string, bool)

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// LoadEnvFiles loads dotenv files into the process environment. Variables
// already set are left untouched. Missing files are ignored.
func LoadEnvFiles(paths ...string) error {
	var existing []string
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("config: stat %s: %w", path, err)
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// LoadFile reads a YAML or JSON connection file, expanding ${VAR} and
// ${VAR:-fallback} references with the process environment.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, os.LookupEnv)
}

// Parse decodes connection settings, then expands environment references in
// every decoded value through lookup. Expanding after decoding keeps values
// such as passwords containing "#" or ": " intact.
func Parse(data []byte, lookup LookupFunc) (File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return File{}, fmt.Errorf("config: document is empty")
	}

	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return File{}, fmt.Errorf("config: parse: %w", yamlErr)
		}
	}
	if len(raw.Connections) == 0 {
		return File{}, fmt.Errorf("config: no connections defined")
	}

	file := File{
		Default:     Expand(raw.Default, lookup),
		Connections: make(map[string]Connection, len(raw.Connections)),
	}
	for name, conn := range raw.Connections {
		expanded, err := conn.expand(lookup)
		if err != nil {
			return File{}, fmt.Errorf("config: connection %q: %w", name, err)
		}
		file.Connections[name] = expanded
	}
	return file, nil
}

type rawFile struct {
	Default     string                   `yaml:"default" json:"default"`
	Connections map[string]rawConnection `yaml:"connections" json:"connections"`
}

// rawConnection mirrors Connection with the port left undecoded so it may
// hold a ${VAR} reference.
type rawConnection struct {
	Driver   string `yaml:"driver" json:"driver"`
	Host     string `yaml:"host" json:"host"`
	Port     any    `yaml:"port" json:"port"`
	Database string `yaml:"database" json:"database"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Charset  string `yaml:"charset" json:"charset"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	Path     string `yaml:"path" json:"path"`
	SSLMode  string `yaml:"sslmode" json:"sslmode"`
}

func (r rawConnection) expand(lookup LookupFunc) (Connection, error) {
	port, err := parsePort(r.Port, lookup)
	if err != nil {
		return Connection{}, err
	}
	return Connection{
		Driver:   Expand(r.Driver, lookup),
		Host:     Expand(r.Host, lookup),
		Port:     port,
		Database: Expand(r.Database, lookup),
		Username: Expand(r.Username, lookup),
		Password: Expand(r.Password, lookup),
		Charset:  Expand(r.Charset, lookup),
		Prefix:   Expand(r.Prefix, lookup),
		Path:     Expand(r.Path, lookup),
		SSLMode:  Expand(r.SSLMode, lookup),
	}, nil
}

func parsePort(value any, lookup LookupFunc) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("invalid port %v", v)
		}
		return int(v), nil
	case string:
		text := strings.TrimSpace(Expand(v, lookup))
		if text == "" {
			return 0, nil
		}
		port, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("invalid port %q: %w", text, err)
		}
		return port, nil
	default:
		return 0, fmt.Errorf("invalid port %v", value)
	}
}

// Expand substitutes ${VAR} and ${VAR:-fallback} references. Unset variables
// without a fallback expand to the empty string.
func Expand(input string, lookup LookupFunc) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if value, ok := lookup(parts[1]); ok && value != "" {
			return value
		}
		return parts[3]
	})
}

// FromEnv builds a connection from the DB_* variables of a Laravel style
// environment: DB_CONNECTION, DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME,
// DB_PASSWORD, DB_CHARSET and DB_PREFIX.
func FromEnv(lookup LookupFunc) (Connection, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		value, _ := lookup(key)
		return strings.TrimSpace(value)
	}

	conn := Connection{
		Driver:   get("DB_CONNECTION"),
		Host:     get("DB_HOST"),
		Database: get("DB_DATABASE"),
		Username: get("DB_USERNAME"),
		Password: get("DB_PASSWORD"),
		Charset:  get("DB_CHARSET"),
		Prefix:   get("DB_PREFIX"),
	}
	if raw := get("DB_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Connection{}, fmt.Errorf("config: invalid DB_PORT %q: %w", raw, err)
		}
		conn.Port = port
	}
	if conn.Database == "" {
		return Connection{}, fmt.Errorf("config: DB_DATABASE is not set")
	}
	return conn.WithDefaults(), nil
}
