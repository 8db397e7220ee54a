package plugin

// NewLocal returns the handler for local-disk remotes. Useful for trying
// the mount and autostart workflows without network credentials.
func NewLocal() (Plugin, error) {
	return &base{
		typeName:    "Local",
		description: "Local Disk - expose a local directory as a remote",
		fields: []Field{
			{
				Name:        "nounc",
				Label:       "Disable UNC",
				Kind:        KindBool,
				Description: "Disable UNC long path conversion (Windows only)",
			},
		},
	}, nil
}
