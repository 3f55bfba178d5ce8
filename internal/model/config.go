package model

import "path/filepath"

type Config struct {
	DataDir   string `yaml:"data_dir"`
	UsersFile string `yaml:"users_file"`
	TasksFile string `yaml:"tasks_file"`
	Editor    string `yaml:"editor"`
	Sync      struct {
		Enable     bool     `yaml:"enable"`
		Bucket     string   `yaml:"bucket"`
		Prefix     string   `yaml:"prefix"`
		AWSProfile string   `yaml:"aws_profile"`
		AWSRegion  string   `yaml:"aws_region"`
		Exclude    []string `yaml:"exclude"`
	} `yaml:"sync"`
}

func DefaultConfig() Config {
	c := Config{
		DataDir:   "~/.config/todo-cli/data",
		UsersFile: "users.json",
		TasksFile: "todos.json",
		Editor:    "vim",
	}
	c.Sync.Prefix = "todo-cli"
	c.Sync.Exclude = []string{SessionFile, MetadataFile}
	return c
}

const (
	SessionFile  = "session.yaml"
	MetadataFile = "metadata.json"
)

// UsersPath returns UsersFile, joined onto DataDir when relative.
func (c Config) UsersPath() string {
	return c.resolve(c.UsersFile, "users.json")
}

func (c Config) TasksPath() string {
	return c.resolve(c.TasksFile, "todos.json")
}

func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, SessionFile)
}

func (c Config) MetadataPath() string {
	return filepath.Join(c.DataDir, MetadataFile)
}

func (c Config) resolve(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
