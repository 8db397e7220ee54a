package plugin

import "net/url"

// NewWebDAV returns the handler for WebDAV remotes (Nextcloud, ownCloud,
// SharePoint and generic servers).
func NewWebDAV() (Plugin, error) {
	return &base{
		typeName:    "WebDAV",
		description: "WebDAV - HTTP-based file access, used by Nextcloud and ownCloud",
		notes: `For Nextcloud and ownCloud use the full DAV endpoint, e.g.
https://cloud.example.com/remote.php/dav/files/USERNAME/.
App passwords are recommended over the account password.`,
		fields: []Field{
			{
				Name:        "url",
				Label:       "URL",
				Kind:        KindText,
				Required:    true,
				Description: "URL of the WebDAV endpoint",
			},
			{
				Name:        "vendor",
				Label:       "Vendor",
				Kind:        KindChoice,
				Choices:     []string{"nextcloud", "owncloud", "sharepoint", "other"},
				Default:     "other",
				Description: "Server flavor, enables vendor-specific quirks",
			},
			{
				Name:        "user",
				Label:       "Username",
				Kind:        KindText,
				Description: "WebDAV username",
			},
			{
				Name:        "pass",
				Label:       "Password",
				Kind:        KindSecret,
				Description: "WebDAV password or app password",
			},
		},
		validate: func(cfg map[string]string) []string {
			raw := cfg["url"]
			if raw == "" {
				return nil // required-check already covers this
			}
			u, err := url.Parse(raw)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return []string{"URL must be a valid http or https URL"}
			}
			return nil
		},
	}, nil
}
