package plugin

// NewFTP returns the handler for plain FTP remotes.
func NewFTP() (Plugin, error) {
	return &base{
		typeName:    "FTP",
		description: "File Transfer Protocol - unencrypted unless TLS is enabled",
		notes: `FTP sends credentials in cleartext unless explicit or implicit TLS
is enabled. Prefer SFTP where the server supports it.`,
		fields: []Field{
			{
				Name:        "host",
				Label:       "Host",
				Kind:        KindText,
				Required:    true,
				Description: "FTP server to connect to",
			},
			{
				Name:        "user",
				Label:       "Username",
				Kind:        KindText,
				Required:    true,
				Description: "FTP username",
			},
			{
				Name:        "port",
				Label:       "Port",
				Kind:        KindInt,
				Default:     "21",
				Min:         1,
				Max:         65535,
				Description: "FTP port number (default: 21)",
			},
			{
				Name:        "pass",
				Label:       "Password",
				Kind:        KindSecret,
				Description: "FTP password",
			},
		},
		advanced: []Field{
			{
				Name:        "explicit_tls",
				Label:       "Explicit TLS",
				Kind:        KindBool,
				Description: "Use explicit FTPS (AUTH TLS)",
			},
			{
				Name:        "tls",
				Label:       "Implicit TLS",
				Kind:        KindBool,
				Description: "Use implicit FTPS (connection starts encrypted)",
			},
		},
	}, nil
}
