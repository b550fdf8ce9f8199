package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version    string     `yaml:"version" json:"version"`
	Server     Server     `yaml:"server" json:"server"`
	Storage    Storage    `yaml:"storage" json:"storage"`
	Rewards    Rewards    `yaml:"rewards" json:"rewards"`
	Streak     Streak     `yaml:"streak" json:"streak"`
	Challenges Challenges `yaml:"challenges" json:"challenges"`
	Toasts     Toasts     `yaml:"toasts" json:"toasts"`
	Sweeps     Sweeps     `yaml:"sweeps" json:"sweeps"`
	Assist     Assist     `yaml:"assist" json:"assist"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Storage struct {
	// Driver selects the blob backend: "file" or "sqlite".
	Driver  string `yaml:"driver" json:"driver"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type Rewards struct {
	BasePoints     int     `yaml:"base_points" json:"base_points"`
	SubtaskPoints  int     `yaml:"subtask_points" json:"subtask_points"`
	HighMultiplier float64 `yaml:"high_multiplier" json:"high_multiplier"`
	LowMultiplier  float64 `yaml:"low_multiplier" json:"low_multiplier"`
}

type Streak struct {
	ResetAfterHours int `yaml:"reset_after_hours" json:"reset_after_hours"`
}

// ChallengeTemplate drives the daily-challenge generator. Description may
// contain [requirement] and [category] placeholders.
type ChallengeTemplate struct {
	Type           string `yaml:"type" json:"type"`
	Title          string `yaml:"title" json:"title"`
	Description    string `yaml:"description" json:"description"`
	RequirementMin int    `yaml:"requirement_min" json:"requirement_min"`
	RequirementMax int    `yaml:"requirement_max" json:"requirement_max"`
	RewardMin      int    `yaml:"reward_min" json:"reward_min"`
	RewardMax      int    `yaml:"reward_max" json:"reward_max"`
}

type Challenges struct {
	Templates []ChallengeTemplate `yaml:"templates" json:"templates"`
}

type Toasts struct {
	DefaultDurationMS int `yaml:"default_duration_ms" json:"default_duration_ms"`
}

type Sweeps struct {
	StreakEveryHours      int `yaml:"streak_every_hours" json:"streak_every_hours"`
	ChallengeEveryMinutes int `yaml:"challenge_every_minutes" json:"challenge_every_minutes"`
	ToastEverySeconds     int `yaml:"toast_every_seconds" json:"toast_every_seconds"`
}

func (s Sweeps) StreakInterval() time.Duration {
	return time.Duration(s.StreakEveryHours) * time.Hour
}

func (s Sweeps) ChallengeInterval() time.Duration {
	return time.Duration(s.ChallengeEveryMinutes) * time.Minute
}

func (s Sweeps) ToastInterval() time.Duration {
	return time.Duration(s.ToastEverySeconds) * time.Second
}

type Assist struct {
	Enabled        bool   `yaml:"enabled" json:"enabled"`
	BaseURL        string `yaml:"base_url" json:"base_url"`
	Model          string `yaml:"model" json:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8484"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Rewards.BasePoints == 0 {
		c.Rewards.BasePoints = 10
	}
	if c.Rewards.SubtaskPoints == 0 {
		c.Rewards.SubtaskPoints = 5
	}
	if c.Rewards.HighMultiplier == 0 {
		c.Rewards.HighMultiplier = 1.5
	}
	if c.Rewards.LowMultiplier == 0 {
		c.Rewards.LowMultiplier = 0.8
	}
	if c.Streak.ResetAfterHours == 0 {
		c.Streak.ResetAfterHours = 48
	}
	if len(c.Challenges.Templates) == 0 {
		c.Challenges.Templates = DefaultChallengeTemplates()
	}
	if c.Toasts.DefaultDurationMS == 0 {
		c.Toasts.DefaultDurationMS = 3000
	}
	if c.Sweeps.StreakEveryHours == 0 {
		c.Sweeps.StreakEveryHours = 6
	}
	if c.Sweeps.ChallengeEveryMinutes == 0 {
		c.Sweeps.ChallengeEveryMinutes = 60
	}
	if c.Sweeps.ToastEverySeconds == 0 {
		c.Sweeps.ToastEverySeconds = 5
	}
	if c.Assist.BaseURL == "" {
		c.Assist.BaseURL = "https://api.openai.com/v1"
	}
	if c.Assist.Model == "" {
		c.Assist.Model = "gpt-3.5-turbo"
	}
	if c.Assist.TimeoutSeconds == 0 {
		c.Assist.TimeoutSeconds = 15
	}
}

// DefaultChallengeTemplates mirrors the built-in challenge pool.
func DefaultChallengeTemplates() []ChallengeTemplate {
	return []ChallengeTemplate{
		{
			Type:           "task_completion",
			Title:          "Concluir tarefas",
			Description:    "Complete [requirement] tarefas hoje",
			RequirementMin: 2,
			RequirementMax: 4,
			RewardMin:      10,
			RewardMax:      30,
		},
		{
			Type:           "category_focus",
			Title:          "Foco em categoria",
			Description:    "Complete [requirement] tarefas da categoria [category]",
			RequirementMin: 1,
			RequirementMax: 2,
			RewardMin:      15,
			RewardMax:      30,
		},
	}
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults are returned so the server can run with zero setup.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.ApplyDefaults()
	return &c, nil
}
