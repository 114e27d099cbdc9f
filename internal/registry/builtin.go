package registry

// Builtin returns a registry seeded with the built-in node type catalog.
func Builtin() *Registry {
	r := New()
	for _, entry := range builtinEntries {
		// Entries are statically defined; duplicates cannot occur here.
		_ = r.Register(entry)
	}
	return r
}

var builtinEntries = []Entry{
	{
		Type:     "upload",
		Category: "media",
		Label:    "Media Upload",
		Outputs:  []Port{{Key: "output", Label: "File URL", DataType: "url", Required: true}},
		Params: []Param{
			{Key: "output", Label: "Uploaded file URL", Type: "url", Required: true},
		},
	},
	{
		Type:     "prediction",
		Category: "ai",
		Label:    "Model Prediction",
		Outputs:  []Port{{Key: "output", Label: "Result URL", DataType: "url", Required: true}},
		Params: []Param{
			{Key: "model", Label: "Model", Type: "string", Required: true},
			{Key: "schema", Label: "Field schema", Type: "json"},
		},
		Cost:         0.01,
		SchemaDriven: true,
	},
	{
		Type:     "text",
		Category: "helper",
		Label:    "Text",
		Inputs:   []Port{{Key: "input", Label: "Input text", DataType: "text"}},
		Outputs:  []Port{{Key: "output", Label: "Text", DataType: "text", Required: true}},
		Params: []Param{
			{Key: "text", Label: "Text template", Type: "text", Required: true, Connectable: true},
		},
	},
	{
		Type:     "merge-text",
		Category: "helper",
		Label:    "Merge Text",
		Outputs:  []Port{{Key: "output", Label: "Merged text", DataType: "text", Required: true}},
		Params: []Param{
			{Key: "texts", Label: "Text parts", Type: "array", Required: true, Connectable: true},
			{Key: "separator", Label: "Separator", Type: "string", Default: "\n"},
		},
	},
	{
		Type:     "image-resize",
		Category: "tool",
		Label:    "Image Resize",
		Inputs:   []Port{{Key: "image", Label: "Image", DataType: "url", Required: true}},
		Outputs:  []Port{{Key: "output", Label: "Resized image", DataType: "url", Required: true}},
		Params: []Param{
			{Key: "width", Label: "Width", Type: "number", Default: 1024},
			{Key: "height", Label: "Height", Type: "number", Default: 1024},
		},
	},
	{
		Type:     "export",
		Category: "output",
		Label:    "Export",
		Inputs:   []Port{{Key: "input", Label: "Value", DataType: "any", Required: true}},
		Outputs:  []Port{{Key: "output", Label: "Value", DataType: "any", Required: true}},
		Params: []Param{
			{Key: "format", Label: "Format", Type: "string", Default: "original", Options: []string{"original", "png", "jpeg", "mp4"}},
		},
	},
}
