package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tpl "github.com/cloudcopper/misc/env/template"
	"github.com/go-playground/validator/v10"
	"github.com/rythmn1111/final-cam/lib"
	"github.com/rythmn1111/final-cam/lib/types"
	"github.com/rythmn1111/final-cam/ports"

	"gopkg.in/yaml.v3"
)

// Config is the effective camd configuration, loaded from the yaml
// config file (executed as env template) with package defaults.
type Config struct {
	PhotosDir      string         `yaml:"photos_dir" validate:"required,min=3,abspath"`
	LatestName     string         `yaml:"latest_name" validate:"required"`
	CaptureCmd     []string       `yaml:"capture_cmd" validate:"required,min=1"`
	ConvertCmd     []string       `yaml:"convert_cmd" validate:"required,min=1"`
	CaptureTimeout types.Duration `yaml:"capture_timeout"`
	Wallet         string         `yaml:"wallet"`
	Node           string         `yaml:"node" validate:"required,url"`
	Gateway        string         `yaml:"gateway" validate:"required,url"`
	MaxUploadBytes int64          `yaml:"max_upload_bytes" validate:"gt=0"`
}

func (c *Config) String() string {
	s := ""
	s += fmt.Sprintf("photos_dir: %v\n", c.PhotosDir)
	s += fmt.Sprintf("latest_name: %v\n", c.LatestName)
	s += fmt.Sprintf("capture_cmd: %v\n", c.CaptureCmd)
	s += fmt.Sprintf("convert_cmd: %v\n", c.ConvertCmd)
	s += fmt.Sprintf("capture_timeout: %v\n", c.CaptureTimeout)
	s += fmt.Sprintf("wallet: %v\n", c.Wallet)
	s += fmt.Sprintf("node: %v\n", c.Node)
	s += fmt.Sprintf("gateway: %v\n", c.Gateway)
	s += fmt.Sprintf("max_upload_bytes: %v\n", c.MaxUploadBytes)
	return strings.TrimSuffix(s, "\n")
}

var (
	Listen                = ":5050"
	ConfigFileName        = "cam.yml"
	TopRootFileSystemPath = ""
	RecordsFileName       = "cam.db"
)

// Compile time defaults. The config file overrides them and the env
// template within the config file allows per-host tweaks.
func Default() *Config {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "/tmp"
	}
	return &Config{
		PhotosDir:  filepath.Join(home, "photos"),
		LatestName: "latest.webp",
		CaptureCmd: []string{
			"libcamera-jpeg", "-n",
			"--width", "1024", "--height", "1024",
			"-o", "{out}",
		},
		ConvertCmd: []string{
			"cwebp", "-quiet", "-q", "80", "{in}", "-o", "{out}",
		},
		CaptureTimeout: types.Duration(30 * time.Second),
		Wallet:         filepath.Join(home, "photos", "wallet.json"),
		Node:           "https://arweave.net",
		Gateway:        "https://arweave.net",
		MaxUploadBytes: 100 * 1024,
	}
}

func LoadConfig(log ports.Logger, f fs.ReadFileFS) (*Config, error) {
	config, err := loadConfigFile(log, f, ConfigFileName)
	if err != nil {
		return config, err
	}

	if err := config.Validate(lib.Validate); err != nil {
		return config, err
	}

	// dump effective config
	dump := strings.Split(config.String(), "\n")
	for _, s := range dump {
		if key, _, ok := strings.Cut(s, ":"); ok && lib.IsKeyValueBlacklisted(key) {
			continue
		}
		log.Debug(s)
	}
	return config, nil
}

func (c *Config) Validate(val *validator.Validate) error {
	return val.Struct(c)
}

// The loadConfigFile reads the named config file from given fs,
// execute file as env template,
// and unmarshal result over the defaults
func loadConfigFile(log ports.Logger, f fs.ReadFileFS, fileName string) (*Config, error) {
	cfg := Default()

	log.Info("loading config", slog.String("fileName", fileName))
	blob, err := os.ReadFile(fileName)
	if err != nil {
		blob, err = f.ReadFile(fileName)
		if err != nil {
			// No config file at all - run on defaults
			log.Warn("no config file - using defaults", slog.Any("err", err))
			return cfg, nil
		}
	}

	// parse config as template
	t, err := tpl.Parse(string(blob))
	if err != nil {
		return nil, err
	}
	// execute template
	s, err := t.Execute()
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal([]byte(s), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
