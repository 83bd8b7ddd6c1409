package cache

// SchemaVersion is part of every key. Bump it when the cached layout encoding
// changes so stale entries are never decoded.
const SchemaVersion = "v1"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a decoded layout.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts holds the decode options that change the decoded layout.
type LayoutKeyOpts struct {
	EditorCarry bool `json:"editor_carry"`
}

// DefaultKeyer hashes the document hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", SchemaVersion, docHash, opts)
}
