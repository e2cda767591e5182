package release

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/coreos/go-semver/semver"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// ConfigFile is the name of the project settings file the pm tool reads from
// the current directory.
const ConfigFile = "pm.toml"

type Config struct {
	// Version is the semantic version of the release being processed.
	Version *semver.Version

	// Branch is the name of the release branch.
	Branch string

	// Tag is the name of the final release tag.
	Tag string

	// Today is the date YYYY-MM-DD date of the release.
	Today string

	// Changelog is the name of the file holding the change log.
	Changelog string

	// Owner is the name of the owner of the project on github.
	Owner string

	// Project is the name of the repository on github.
	Project string

	// TargetBranch is the branch we are merging into (usually master).
	TargetBranch string

	// ChangesInfo is the bullets in the change log to put into the release
	// body.
	ChangesInfo string
}

// DefaultConfig holds the settings assumed for any key pm.toml leaves out.
var DefaultConfig = Config{
	Changelog: "Changes.md",
	Owner:     "zostay",
	Project:   "go-httpmsg",

	TargetBranch: "master",
}

// pm.toml key mapping to release settings.
type fileConfig struct {
	Owner        string `toml:"owner"`
	Project      string `toml:"project"`
	Changelog    string `toml:"changelog"`
	TargetBranch string `toml:"target-branch"`
}

// LoadConfig reads pm.toml and overlays it onto DefaultConfig. A missing file
// is not an error, the defaults describe this repository.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig

	var raw fileConfig
	meta, err := toml.DecodeFile(ConfigFile, &raw)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("unable to load %s: %w", ConfigFile, err)
	}

	if meta.IsDefined("owner") {
		cfg.Owner = strings.TrimSpace(raw.Owner)
	}
	if meta.IsDefined("project") {
		cfg.Project = strings.TrimSpace(raw.Project)
	}
	if meta.IsDefined("changelog") {
		cfg.Changelog = strings.TrimSpace(raw.Changelog)
	}
	if meta.IsDefined("target-branch") {
		cfg.TargetBranch = strings.TrimSpace(raw.TargetBranch)
	}

	return &cfg, nil
}

func ref(t, n string) string {
	return path.Join("refs", t, n)
}

func refSpec(r string) config.RefSpec {
	return config.RefSpec(strings.Join([]string{r, r}, ":"))
}

func (c *Config) BranchRef() string {
	return ref("heads", c.Branch)
}

func (c *Config) BranchRefName() plumbing.ReferenceName {
	return plumbing.ReferenceName(c.BranchRef())
}

func (c *Config) BranchRefSpec() config.RefSpec {
	return refSpec(c.BranchRef())
}

func (c *Config) TargetBranchRef() string {
	return ref("heads", c.TargetBranch)
}

func (c *Config) TargetBranchRefName() plumbing.ReferenceName {
	return plumbing.ReferenceName(c.TargetBranchRef())
}

func (c *Config) TagRef() string {
	return ref("tags", c.Tag)
}

func (c *Config) TagRefSpec() config.RefSpec {
	return refSpec(c.TagRef())
}
