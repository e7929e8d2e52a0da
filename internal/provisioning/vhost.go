package provisioning

import (
	"bytes"
	"fmt"
	"text/template"
)

// vhostTemplate is the Apache virtual host definition written into the
// container, templated with hostname and document root.
var vhostTemplate = template.Must(template.New("vhost").Parse(`<VirtualHost *:80>
    ServerName {{.Hostname}}
    ServerAdmin webmaster@{{.Hostname}}
    DocumentRoot {{.WebRoot}}

    <Directory {{.WebRoot}}>
        Options FollowSymLinks
        AllowOverride All
        Require all granted
    </Directory>

    ErrorLog ${APACHE_LOG_DIR}/{{.Hostname}}-error.log
    CustomLog ${APACHE_LOG_DIR}/{{.Hostname}}-access.log combined
</VirtualHost>
`))

// VirtualHost holds the parameters for the Apache site definition.
type VirtualHost struct {
	Hostname string
	WebRoot  string
}

// Path returns the sites-available location for this site.
func (v VirtualHost) Path() string {
	return "/etc/apache2/sites-available/" + v.Hostname + ".conf"
}

// Render produces the virtual host file content.
func (v VirtualHost) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := vhostTemplate.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("failed to render virtual host: %w", err)
	}
	return buf.Bytes(), nil
}
