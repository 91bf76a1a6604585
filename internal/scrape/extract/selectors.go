package extract

// Built-in selector and keyword tables for the generic strategies. These
// encode the common shapes of job boards observed in the wild; custom
// configs override them per company.

// Title/text validation thresholds.
const (
	minTitleLength   = 3
	minTitleWords    = 2  // iframe candidates only
	minRowTextLength = 10 // generic containers must carry real text
	minURLDepth      = 4  // job pages sit below the board root
)

// containerKeywords are matched against class/id/data attributes of
// article/li/div elements by the default strategy.
var containerKeywords = []string{
	"job",
	"position",
	"role",
	"opening",
	"listing",
	"vacancy",
	"post-card",
	"posting",
	"opportunity",
}

// resultItemPatterns are data-qa shapes some boards use without any
// job-related wording.
var resultItemPatterns = []string{
	`li[data-qa*="ResultItem"]`,
	`li[data-qa*="resultItem"]`,
	`div[data-qa*="ResultItem"]`,
	`div[data-qa*="resultItem"]`,
	`li[data-qa="searchResultItem"]`,
	`div[data-qa="searchResultItem"]`,
}

// dataAttrExclusions filter non-job result items (talent communities,
// event signups) out of the data-qa matches.
var dataAttrExclusions = []string{
	"talent",
	"community",
	"event",
	"tcjoin",
}

// jobLinkSelectors catch boards that link jobs directly without any
// container element.
var jobLinkSelectors = []string{
	`a[href*="/job/"]`,
	`a[href*="/jobs/"]`,
	`a[href*="/position/"]`,
	`a[href*="/positions/"]`,
	`a[href*="/opening/"]`,
	`a[href*="/openings/"]`,
	`a[href*="/role/"]`,
	`a[href*="/roles/"]`,
}

// iframeJobSelectors cover Greenhouse-style embedded boards.
var iframeJobSelectors = []string{
	".opening",
	"div.opening",
	"section.level-0",
	`div[id*="job"]`,
}

// jobIndicators decide whether a frame's text looks like a job board at
// all before its containers are harvested.
var jobIndicators = []string{
	"job",
	"position",
	"career",
	"opening",
	"apply",
	"role",
}

// iframeExcludeURLPatterns drop navigation and chrome links inside
// embedded boards.
var iframeExcludeURLPatterns = []string{
	"/embed/",
	"/careers$",
	"/careers/$",
	"/careers#",
	"#",
	"javascript:",
	"mailto:",
	"/search",
	"/filter",
}

// iframeExcludeTitleKeywords drop navigation anchors by their text.
var iframeExcludeTitleKeywords = []string{
	"view all",
	"see all",
	"back to",
	"home",
	"careers",
	"about",
	"apply",
}

// nonJobKeywords drop informational content that matches the container
// heuristics but is not a posting.
var nonJobKeywords = []string{
	"talent network",
	"join our",
	"join the",
	"talent community",
	"sign up",
	"career alert",
	"job alert",
	"newsletter",
	"filter",
	"sort by",
	"results",
	"open positions",
	"our values",
	"company values",
	"benefits",
	"perks",
}
