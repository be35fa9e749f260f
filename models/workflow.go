package models

// WorkflowFile describes a stored workflow document as listed to the
// frontend. Data repeats the same fields for clients that read the nested
// form.
type WorkflowFile struct {
	Name      string  `json:"name"`
	Filename  string  `json:"filename"`
	File      string  `json:"file"`
	ID        string  `json:"id"`
	Path      string  `json:"path"`
	Subfolder string  `json:"subfolder"`
	Ext       string  `json:"ext"`
	Extension string  `json:"extension"`
	Type      string  `json:"type"`
	Format    string  `json:"format"`
	Created   float64 `json:"created"`
	Modified  float64 `json:"modified"`
	Size      int64   `json:"size"`
	Writable  bool    `json:"writable"`
	Global    bool    `json:"global"`

	Data *WorkflowFile `json:"data,omitempty"`
}

// WorkflowListingKeys are the listing fields a client may echo back inside
// a saved document. They are dropped before the document is stored.
var WorkflowListingKeys = []string{
	"created", "modified", "size", "type", "ext", "extension",
	"filename", "file", "path", "subfolder", "data",
}
