package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxPages     = 50
	DefaultPageDelay    = 800 * time.Millisecond
	DefaultChapterDelay = 1200 * time.Millisecond
)

type Config struct {
	Output    string `yaml:"output"`
	Overwrite bool   `yaml:"overwrite"`
	Debug     bool   `yaml:"debug"`

	DefaultURL   string `yaml:"default_url"`
	DefaultRange string `yaml:"default_range"`
	DefaultList  string `yaml:"default_list"`

	// MaxPages caps the sub-pages walked for a single chapter.
	MaxPages     int           `yaml:"max_pages"`
	PageDelay    time.Duration `yaml:"page_delay"`
	ChapterDelay time.Duration `yaml:"chapter_delay"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`
	Cloudflare bool   `yaml:"cloudflare"`
}

type Options struct {
	IgnoreConfig bool
	Debug        bool
	Output       string
	Overwrite    bool
	DefaultURL   string
	DefaultRange string
	DefaultList  string
	MaxPages     int
	Cookie       string
	CookieFile   string
	UserAgent    string
	Cloudflare   bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:       ".",
		Overwrite:    false,
		Debug:        false,
		DefaultURL:   "",
		DefaultRange: "",
		DefaultList:  "",
		MaxPages:     DefaultMaxPages,
		PageDelay:    DefaultPageDelay,
		ChapterDelay: DefaultChapterDelay,
		Cookie:       "",
		CookieFile:   "",
		UserAgent:    "",
		Cloudflare:   false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `noveld config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Overwrite {
		c.Overwrite = true
	}
	if o.Debug {
		c.Debug = true
	}
	if o.DefaultURL != "" {
		c.DefaultURL = o.DefaultURL
	}
	if o.DefaultRange != "" {
		c.DefaultRange = o.DefaultRange
	}
	if o.DefaultList != "" {
		c.DefaultList = o.DefaultList
	}
	if o.MaxPages != 0 {
		c.MaxPages = o.MaxPages
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cloudflare {
		c.Cloudflare = true
	}
}

// normalizeDefaults fills unset values. A zero delay in a config file reads
// as unset; pass the flag explicitly to run without delays.
func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.PageDelay <= 0 {
		c.PageDelay = DefaultPageDelay
	}
	if c.ChapterDelay <= 0 {
		c.ChapterDelay = DefaultChapterDelay
	}
}

func (c *Config) Print() {
	c.Fprint(os.Stdout)
}

func (c *Config) Fprint(w io.Writer) {
	if c.Output != "" {
		_, _ = fmt.Fprintf(w, " -output: %s\n", c.Output)
	}
	if c.Overwrite {
		_, _ = fmt.Fprintf(w, " -overwrite: %t\n", c.Overwrite)
	}
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.DefaultURL != "" {
		_, _ = fmt.Fprintf(w, " -url: %s\n", c.DefaultURL)
	}
	if c.DefaultRange != "" {
		_, _ = fmt.Fprintf(w, " -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		_, _ = fmt.Fprintf(w, " -list: %s\n", c.DefaultList)
	}
	_, _ = fmt.Fprintf(w, " -max_pages: %d\n", c.MaxPages)
	_, _ = fmt.Fprintf(w, " -page_delay: %s\n", c.PageDelay)
	_, _ = fmt.Fprintf(w, " -chapter_delay: %s\n", c.ChapterDelay)
	if c.CookieFile != "" {
		_, _ = fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		_, _ = fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.Cloudflare {
		_, _ = fmt.Fprintf(w, " -cloudflare: %t\n", c.Cloudflare)
	}
}
