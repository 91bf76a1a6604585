// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by NormalizeAndValidate when a field is zero.
const (
	DefaultTimeoutMS     = 30000
	DefaultMaxPages      = 10
	DefaultWaitState     = "networkidle"
	DefaultActionWaitMS  = 500
	DefaultActionTimeout = 5000
	DefaultMaxRepeats    = 50
)

type Config struct {
	App struct {
		DataDir  string `yaml:"data_dir"`
		Output   string `yaml:"output"`
		Parallel int    `yaml:"parallel"`
		Headless *bool  `yaml:"headless"`
		LogFile  string `yaml:"log_file"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	UniversalKeywords []string  `yaml:"universal_keywords"`
	Companies         []Company `yaml:"companies"`
}

type Company struct {
	Name             string           `yaml:"name"`
	JobBoardURL      string           `yaml:"job_board_url"`
	Keywords         []string         `yaml:"keywords"`
	TimeoutMS        int              `yaml:"timeout_ms"`
	WaitForLoadState string           `yaml:"wait_for_load_state"` // networkidle/load/domcontentloaded
	UseIframe        bool             `yaml:"use_iframe"`
	MaxPages         int              `yaml:"max_pages"`
	LocationFilters  *LocationFilters `yaml:"location_filters"`
	PreScrapeActions []ActionStep     `yaml:"pre_scrape_actions"`
	Scraping         *Scraping        `yaml:"scraping"`
}

type LocationFilters struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// ActionStep is one configured page interaction executed before
// extraction (dismiss a cookie banner, open a filter, exhaust a
// "load more" button).
type ActionStep struct {
	Type               string `yaml:"type"` // click/fill/select/check/uncheck/press/hover/wait
	Selector           string `yaml:"selector"`
	Value              string `yaml:"value"`
	WaitAfterMS        int    `yaml:"wait_after_ms"`
	WaitForNetworkIdle bool   `yaml:"wait_for_network_idle"`
	TimeoutMS          int    `yaml:"timeout_ms"`
	RepeatUntilGone    bool   `yaml:"repeat_until_gone"` // click only
	MaxRepeats         int    `yaml:"max_repeats"`
}

// Scraping overrides the extraction defaults for boards the generic
// heuristics cannot read.
type Scraping struct {
	ContainerSelectors  []string        `yaml:"container_selectors"`
	LinkSelector        string          `yaml:"link_selector"`
	TitleSelector       string          `yaml:"title_selector"`
	DescriptionSelector string          `yaml:"description_selector"`
	UseJSNavigation     bool            `yaml:"use_js_navigation"`
	ExcludePatterns     ExcludePatterns `yaml:"exclude_patterns"`

	// nil means "use the built-in pagination selectors"; an explicitly
	// empty list disables pagination for the board.
	PaginationSelectors *[]string `yaml:"pagination_selectors"`
}

type ExcludePatterns struct {
	URLs   []string `yaml:"urls"`
	Titles []string `yaml:"titles"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
