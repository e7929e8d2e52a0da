package provisioning

import (
	"fmt"
	"strings"

	"github.com/imamik/pvelamp/internal/config"
)

// The remote configuration steps are assembled from typed builders rather
// than interpolated shell text. Identifiers are validated by config and
// passwords come from a shell-safe alphabet, so the rendered commands
// need no quoting gymnastics.

// aptEnv disables interactive debconf prompts during unattended installs.
const aptEnv = "DEBIAN_FRONTEND=noninteractive"

// DefaultPackages is the package set for the LAMP stack plus the
// utilities the installer itself needs.
var DefaultPackages = []string{
	"apache2",
	"mariadb-server",
	"php",
	"libapache2-mod-php",
	"php-mysql",
	"php-curl",
	"php-gd",
	"php-mbstring",
	"php-xml",
	"php-zip",
	"wget",
	"tar",
	"unzip",
}

// SystemUpgrade renders the package index refresh and system upgrade.
type SystemUpgrade struct{}

// Commands returns the remote invocations for this step.
func (SystemUpgrade) Commands() []string {
	return []string{
		"apt-get update",
		aptEnv + " apt-get -y dist-upgrade",
	}
}

// PackageInstall renders the installation of a fixed package set.
type PackageInstall struct {
	Packages []string
}

// Commands returns the remote invocations for this step.
func (p PackageInstall) Commands() []string {
	return []string{
		aptEnv + " apt-get -y install " + strings.Join(p.Packages, " "),
	}
}

// DatabaseBootstrap renders the idempotent database, user, and grant
// statements.
type DatabaseBootstrap struct {
	Name      string
	User      string
	Password  string
	Charset   string
	Collation string
}

// Statements returns the SQL executed against the local server.
func (b DatabaseBootstrap) Statements() []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s CHARACTER SET %s COLLATE %s;",
			b.Name, b.Charset, b.Collation),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'localhost' IDENTIFIED BY '%s';",
			b.User, b.Password),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'localhost';", b.Name, b.User),
		"FLUSH PRIVILEGES;",
	}
}

// Commands returns the remote invocations for this step.
func (b DatabaseBootstrap) Commands() []string {
	return []string{
		fmt.Sprintf(`mysql -u root -e "%s"`, strings.Join(b.Statements(), " ")),
	}
}

// AppInstall renders fetching and unpacking the application release into
// the web root.
type AppInstall struct {
	ReleaseURL string
	WebRoot    string
}

// Commands returns the remote invocations for this step.
func (a AppInstall) Commands() []string {
	return []string{
		fmt.Sprintf("wget -q -O /tmp/app-release.tar.gz %s", a.ReleaseURL),
		fmt.Sprintf("rm -f %s/index.html", a.WebRoot),
		fmt.Sprintf("tar -xzf /tmp/app-release.tar.gz -C %s --strip-components=1", a.WebRoot),
		"rm -f /tmp/app-release.tar.gz",
		fmt.Sprintf("chown -R www-data:www-data %s", a.WebRoot),
	}
}

// SiteEnable renders the Apache site switch-over after the virtual host
// file has been written.
type SiteEnable struct {
	Hostname string
}

// Commands returns the remote invocations for this step.
func (s SiteEnable) Commands() []string {
	return []string{
		"a2dissite 000-default",
		"a2ensite " + s.Hostname,
		"a2enmod rewrite",
		"systemctl restart apache2",
	}
}

// PHPTuning renders the interpreter limit rewrite across all discovered
// php.ini files, followed by a web server restart.
type PHPTuning struct {
	Limits config.PHPConfig
}

// Commands returns the remote invocations for this step.
func (p PHPTuning) Commands() []string {
	directives := []struct{ key, value string }{
		{"memory_limit", p.Limits.MemoryLimit},
		{"upload_max_filesize", p.Limits.UploadMaxFilesize},
		{"post_max_size", p.Limits.PostMaxSize},
		{"max_execution_time", fmt.Sprintf("%d", p.Limits.MaxExecutionTime)},
		{"max_input_time", fmt.Sprintf("%d", p.Limits.MaxInputTime)},
	}

	var seds []string
	for _, d := range directives {
		seds = append(seds, fmt.Sprintf("-e 's/^;*\\s*%s\\s*=.*/%s = %s/'", d.key, d.key, d.value))
	}

	return []string{
		fmt.Sprintf("for ini in /etc/php/*/apache2/php.ini /etc/php/*/cli/php.ini; do if [ -f \"$ini\" ]; then sed -i %s \"$ini\"; fi; done",
			strings.Join(seds, " ")),
		"systemctl restart apache2",
	}
}
