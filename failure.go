package ersdoc

// Stage identifies the pipeline stage that produced a failure record.
type Stage string

// Stages that record per-URL failures.
const (
	StageLinkDiscovery   Stage = "link_discovery"
	StageDocumentLoading Stage = "document_loading"
)

// FailureRecord captures one per-URL failure. Records accumulate on the
// crawl session's append-only failure log; they never abort a run.
type FailureRecord struct {
	URL   string `json:"url"`
	Err   string `json:"error"`
	Stage Stage  `json:"stage"`
	Depth int    `json:"depth"`
}
