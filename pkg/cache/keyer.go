package cache

import "time"

// Key prefixes, also used as the keyType reported to cache hooks.
const (
	KindDiagram  = "diagram"
	KindPlantUML = "plantuml"
)

// Entry lifetimes. Renderings are pure functions of their inputs, so the
// limits only bound disk and memory use.
const (
	TTLDiagram  = 30 * 24 * time.Hour
	TTLPlantUML = 7 * 24 * time.Hour
)

// DiagramKeyOpts are the options that change a rendered Graphviz diagram.
type DiagramKeyOpts struct {
	Format                string  `json:"format"`
	Dimensionality        string  `json:"dim"`
	ShowExplanatoryColumn bool    `json:"column"`
	RankDir               string  `json:"rankdir,omitempty"`
	Scale                 float64 `json:"scale,omitempty"`
}

// PlantUMLKeyOpts are the options that change a PlantUML rendering.
type PlantUMLKeyOpts struct {
	Renderer string `json:"renderer"` // renderer name plus endpoint
	Format   string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DiagramKey keys a Graphviz rendering of the description with the given hash.
	DiagramKey(inputHash string, opts DiagramKeyOpts) string

	// PlantUMLKey keys a PlantUML rendering of the text with the given hash.
	PlantUMLKey(textHash string, opts PlantUMLKeyOpts) string
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DiagramKey implements Keyer.
func (DefaultKeyer) DiagramKey(inputHash string, opts DiagramKeyOpts) string {
	return hashKey(KindDiagram, inputHash, opts)
}

// PlantUMLKey implements Keyer.
func (DefaultKeyer) PlantUMLKey(textHash string, opts PlantUMLKeyOpts) string {
	return hashKey(KindPlantUML, textHash, opts)
}
