package plugin

// NewSFTP returns the handler for SSH File Transfer Protocol remotes.
func NewSFTP() (Plugin, error) {
	return &base{
		typeName:    "SFTP",
		description: "SSH File Transfer Protocol - Secure file transfer over SSH",
		notes: `Important notes:

- Password authentication is less secure than key-based authentication
- For key-based auth, ensure your SSH key has proper permissions (typically 600)
- If using a custom SSH port, make sure it's accessible
- Some servers may require specific SSH ciphers or options`,
		fields: []Field{
			{
				Name:        "host",
				Label:       "Host",
				Kind:        KindText,
				Required:    true,
				Description: "The host to connect to (e.g., example.com)",
			},
			{
				Name:        "user",
				Label:       "Username",
				Kind:        KindText,
				Required:    true,
				Description: "SSH username to use",
			},
			{
				Name:        "port",
				Label:       "Port",
				Kind:        KindInt,
				Default:     "22",
				Min:         1,
				Max:         65535,
				Description: "SSH port number (default: 22)",
			},
			{
				Name:        "pass",
				Label:       "Password",
				Kind:        KindSecret,
				Description: "SSH password (leave empty if using key authentication)",
			},
			{
				Name:        "key_file",
				Label:       "Private Key File",
				Kind:        KindFilePath,
				FileFilter:  "*.pem *.key *.ssh",
				Description: "Path to SSH private key file (for key-based authentication)",
			},
		},
		advanced: []Field{
			{
				Name:        "disable_hashcheck",
				Label:       "Disable Hash Check",
				Kind:        KindBool,
				Description: "Disable the SSH server hash check (set to true if the server doesn't support it)",
			},
			{
				Name:        "use_insecure_cipher",
				Label:       "Allow Insecure Ciphers",
				Kind:        KindBool,
				Description: "Enable legacy SSH ciphers for old servers",
			},
		},
	}, nil
}
