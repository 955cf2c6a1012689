package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always give equal keys.
type Keyer interface {
	// QueryKey identifies a CMS query result.
	QueryKey(dataset, query string, params map[string]any) string

	// LayoutKey identifies a computed layout for a set of aspect ratios.
	LayoutKey(ratiosHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered layout in one format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every engine option that affects a layout.
type LayoutKeyOpts struct {
	ContainerWidth    float64    `json:"w"`
	TargetRowHeight   float64    `json:"h"`
	SpacingHorizontal float64    `json:"sh"`
	SpacingVertical   float64    `json:"sv"`
	Padding           [4]float64 `json:"p"`
	LastRow           string     `json:"last,omitempty"`
}

// ArtifactKeyOpts holds every render option that affects an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`

	// LabelsHash is the hash of the box labels and links, if any.
	LabelsHash string `json:"labels,omitempty"`

	// ImagesHash is the hash of the image list for raster output.
	ImagesHash string `json:"images,omitempty"`
}

// DefaultKeyer hashes key inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) QueryKey(dataset, query string, params map[string]any) string {
	return hashKey("query:"+dataset, query, params)
}

func (DefaultKeyer) LayoutKey(ratiosHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", ratiosHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}
