package provisioning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvelamp/internal/config"
)

func TestSystemUpgradeNonInteractive(t *testing.T) {
	cmds := SystemUpgrade{}.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "apt-get update", cmds[0])
	assert.Contains(t, cmds[1], "DEBIAN_FRONTEND=noninteractive")
	assert.Contains(t, cmds[1], "dist-upgrade")
}

func TestPackageInstallSingleInvocation(t *testing.T) {
	cmds := PackageInstall{Packages: DefaultPackages}.Commands()
	require.Len(t, cmds, 1)
	for _, pkg := range []string{"apache2", "mariadb-server", "libapache2-mod-php", "php-mysql"} {
		assert.Contains(t, cmds[0], pkg)
	}
}

func TestDatabaseBootstrapStatements(t *testing.T) {
	b := DatabaseBootstrap{
		Name:      "appdb",
		User:      "appuser",
		Password:  "s3cr3t-p4ssw0rd.ok",
		Charset:   config.DefaultCharset,
		Collation: config.DefaultCollation,
	}

	stmts := b.Statements()
	require.Len(t, stmts, 4)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS appdb CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", stmts[0])
	assert.Equal(t, "CREATE USER IF NOT EXISTS 'appuser'@'localhost' IDENTIFIED BY 's3cr3t-p4ssw0rd.ok';", stmts[1])
	assert.Equal(t, "GRANT ALL PRIVILEGES ON appdb.* TO 'appuser'@'localhost';", stmts[2])
	assert.Equal(t, "FLUSH PRIVILEGES;", stmts[3])

	cmds := b.Commands()
	require.Len(t, cmds, 1)
	assert.True(t, strings.HasPrefix(cmds[0], `mysql -u root -e "`))
}

func TestAppInstallPreservesOrder(t *testing.T) {
	cmds := AppInstall{
		ReleaseURL: config.DefaultReleaseURL,
		WebRoot:    config.DefaultWebRoot,
	}.Commands()

	require.Len(t, cmds, 5)
	assert.Contains(t, cmds[0], "wget -q -O /tmp/app-release.tar.gz")
	// The placeholder page goes before the archive is unpacked over it.
	assert.Equal(t, "rm -f /var/www/html/index.html", cmds[1])
	assert.Contains(t, cmds[2], "--strip-components=1")
	assert.Equal(t, "chown -R www-data:www-data /var/www/html", cmds[4])
}

func TestSiteEnableSequence(t *testing.T) {
	cmds := SiteEnable{Hostname: "blog"}.Commands()
	assert.Equal(t, []string{
		"a2dissite 000-default",
		"a2ensite blog",
		"a2enmod rewrite",
		"systemctl restart apache2",
	}, cmds)
}

func TestPHPTuningRewritesDirectives(t *testing.T) {
	cmds := PHPTuning{Limits: config.PHPConfig{
		MemoryLimit:       "256M",
		UploadMaxFilesize: "64M",
		PostMaxSize:       "64M",
		MaxExecutionTime:  300,
		MaxInputTime:      300,
	}}.Commands()

	require.Len(t, cmds, 2)
	assert.Contains(t, cmds[0], "memory_limit = 256M")
	assert.Contains(t, cmds[0], "upload_max_filesize = 64M")
	assert.Contains(t, cmds[0], "max_execution_time = 300")
	assert.Contains(t, cmds[0], "/etc/php/*/apache2/php.ini")
	assert.Contains(t, cmds[0], "/etc/php/*/cli/php.ini")
	assert.Equal(t, "systemctl restart apache2", cmds[1])
}

func TestVirtualHostRender(t *testing.T) {
	v := VirtualHost{Hostname: "blog", WebRoot: "/var/www/html"}

	assert.Equal(t, "/etc/apache2/sites-available/blog.conf", v.Path())

	content, err := v.Render()
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "<VirtualHost *:80>")
	assert.Contains(t, text, "ServerName blog")
	assert.Contains(t, text, "DocumentRoot /var/www/html")
	assert.Contains(t, text, "AllowOverride All")
	assert.Contains(t, text, "${APACHE_LOG_DIR}/blog-error.log")
}
