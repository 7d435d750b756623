// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptofdefense/adminscript/pkg/catalog"
	"github.com/deptofdefense/adminscript/pkg/dialect"
	"github.com/deptofdefense/adminscript/pkg/invoker"
	"github.com/deptofdefense/adminscript/pkg/template"
)

func newTestCommand(t *testing.T, initFlags func(flag *pflag.FlagSet), values map[string]string) (*cobra.Command, *viper.Viper) {
	cmd := &cobra.Command{}
	initFlags(cmd.Flags())
	for k, value := range values {
		require.NoError(t, cmd.Flags().Set(k, value), k)
	}
	v, err := initViper(cmd)
	require.NoError(t, err)
	return cmd, v
}

func newTestViper(t *testing.T, initFlags func(flag *pflag.FlagSet), values map[string]string) *viper.Viper {
	_, v := newTestCommand(t, initFlags, values)
	return v
}

// fakeRunner records the commands it is given and the scripts they would run.
type fakeRunner struct {
	fs       afero.Fs
	code     int
	commands []*invoker.Command
	scripts  []string
}

func (r *fakeRunner) Run(ctx context.Context, command *invoker.Command, stdout io.Writer, stderr io.Writer) (int, error) {
	r.commands = append(r.commands, command)
	data, err := afero.ReadFile(r.fs, command.Args[len(command.Args)-1])
	if err != nil {
		return -1, err
	}
	r.scripts = append(r.scripts, string(data))
	return r.code, nil
}

func newTestApplication(fileSystem afero.Fs, runner invoker.Runner) (*application, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &application{fileSystem: fileSystem, runner: runner, stdout: stdout, stderr: stderr}, stdout, stderr
}

func TestCheckInputConfig(t *testing.T) {
	v := newTestViper(t, initRenderFlags, map[string]string{})
	assert.Error(t, checkInputConfig(v, afero.NewMemMapFs(), []string{}))
	assert.NoError(t, checkInputConfig(v, afero.NewMemMapFs(), []string{"weblogic/jta"}))
	assert.Error(t, checkInputConfig(v, afero.NewMemMapFs(), []string{"jta"}))

	v = newTestViper(t, initRenderFlags, map[string]string{flagPlan: "plan.yaml"})
	assert.NoError(t, checkInputConfig(v, afero.NewMemMapFs(), []string{}))
	assert.Error(t, checkInputConfig(v, afero.NewMemMapFs(), []string{"weblogic/jta"}))

	v = newTestViper(t, initRenderFlags, map[string]string{flagTemplateFile: "custom.py", flagDialect: "jacl"})
	assert.Error(t, checkInputConfig(v, afero.NewMemMapFs(), []string{}))

	v = newTestViper(t, initRenderFlags, map[string]string{flagParamsFiles: "domain.ini"})
	assert.Error(t, checkInputConfig(v, afero.NewMemMapFs(), []string{"weblogic/jta"}))

	v = newTestViper(t, initRenderFlags, map[string]string{flagTemplateRoots: "s3://"})
	assert.Error(t, checkInputConfig(v, afero.NewMemMapFs(), []string{"weblogic/jta"}))

	v = newTestViper(t, initRenderFlags, map[string]string{flagLogPerm: "rw"})
	assert.Error(t, checkInputConfig(v, afero.NewMemMapFs(), []string{"weblogic/jta"}))
}

func TestCheckRunConfig(t *testing.T) {
	v := newTestViper(t, initRunFlags, map[string]string{flagTemplateFile: "custom.py"})
	assert.Error(t, checkRunConfig(v, afero.NewMemMapFs(), []string{}))

	v = newTestViper(t, initRunFlags, map[string]string{flagTemplateFile: "custom.py", flagDialect: "wsadmin"})
	assert.NoError(t, checkRunConfig(v, afero.NewMemMapFs(), []string{}))

	v = newTestViper(t, initRunFlags, map[string]string{flagMinHeap: "1024", flagMaxHeap: "256"})
	assert.Error(t, checkRunConfig(v, afero.NewMemMapFs(), []string{"websphere/save_sync"}))

	v = newTestViper(t, initRunFlags, map[string]string{flagWsadminPassword: "secret"})
	assert.Error(t, checkRunConfig(v, afero.NewMemMapFs(), []string{"websphere/save_sync"}))

	v = newTestViper(t, initRunFlags, map[string]string{flagTimeout: "forever"})
	assert.Error(t, checkRunConfig(v, afero.NewMemMapFs(), []string{"websphere/save_sync"}))

	cmd, v := newTestCommand(t, initRunFlags, map[string]string{flagTimeout: "10m"})
	require.NoError(t, checkRunConfig(v, afero.NewMemMapFs(), []string{"websphere/save_sync"}))
	config, err := initInvokerConfig(cmd, v)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, config.Timeout)
	assert.Equal(t, "java", config.JavaPath)
}

func TestCheckListConfig(t *testing.T) {
	initFlags := func(flag *pflag.FlagSet) {
		flag.String(flagFormat, FormatText, "")
		initCatalogFlags(flag)
	}
	fileSystem := afero.NewMemMapFs()
	assert.NoError(t, checkListConfig(newTestViper(t, initFlags, map[string]string{}), fileSystem))
	assert.NoError(t, checkListConfig(newTestViper(t, initFlags, map[string]string{flagFormat: FormatJSON}), fileSystem))
	assert.Error(t, checkListConfig(newTestViper(t, initFlags, map[string]string{flagFormat: "xml"}), fileSystem))
}

func TestCheckCatalogConfig(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fileSystem, "/etc/adminscript/templates/weblogic/jta.py", []byte("cd('/')\n"), 0600))

	testCases := map[string]struct {
		root  string
		valid bool
	}{
		"directory": {root: "/etc/adminscript/templates", valid: true},
		"s3":        {root: "s3://templates/adminscript", valid: true},
		"missing":   {root: "/etc/adminscript/missing"},
		"file":      {root: "/etc/adminscript/templates/weblogic/jta.py"},
		"bucket":    {root: "s3://"},
	}
	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			v := newTestViper(t, initCatalogFlags, map[string]string{flagTemplateRoots: testCase.root})
			err := checkCatalogConfig(v, fileSystem)
			if testCase.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestInitParameters(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fileSystem, "/domain.properties", []byte("cargo.weblogic.domain=base_domain\ncargo.transaction.timeout=300\n"), 0600))
	require.NoError(t, afero.WriteFile(fileSystem, "/override.yaml", []byte("cargo:\n  transaction:\n    timeout: 600\n"), 0600))

	cmd, v := newTestCommand(t, initRenderFlags, map[string]string{
		flagParamsFiles: "/domain.properties,/override.yaml",
		flagParams:      "cargo.datasource.url=jdbc:derby:memory:db;create=true,user=app",
	})
	parameters, err := initParameters(cmd, v, fileSystem)
	require.NoError(t, err)
	assert.Equal(t, template.Parameters{
		"cargo.weblogic.domain":     "base_domain",
		"cargo.transaction.timeout": "600",
		"cargo.datasource.url":      "jdbc:derby:memory:db;create=true,user=app",
	}, parameters)
}

func TestInitParametersFromEnvironment(t *testing.T) {
	t.Setenv("PARAM", "cargo.jvmargs=-Xmx512m -Dtrace=true\ncargo.datasource.properties=user=app,create=true\n")

	cmd, v := newTestCommand(t, initRenderFlags, map[string]string{})
	parameters, err := initParameters(cmd, v, afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, template.Parameters{
		"cargo.jvmargs":               "-Xmx512m -Dtrace=true",
		"cargo.datasource.properties": "user=app,create=true",
	}, parameters)

	cmd, v = newTestCommand(t, initRenderFlags, map[string]string{flagParams: "cargo.hostname=localhost"})
	parameters, err = initParameters(cmd, v, afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, template.Parameters{"cargo.hostname": "localhost"}, parameters)
}

func TestInitInvokerConfigJavaOptionsFromEnvironment(t *testing.T) {
	t.Setenv("JAVA_OPTIONS", "-Xmx1024m\n-Dweblogic.security.SSL.ignoreHostnameVerification=true")

	cmd, v := newTestCommand(t, initRunFlags, map[string]string{})
	config, err := initInvokerConfig(cmd, v)
	require.NoError(t, err)
	assert.Equal(t, []string{"-Xmx1024m", "-Dweblogic.security.SSL.ignoreHostnameVerification=true"}, config.JavaOptions)
}

func TestRenderInput(t *testing.T) {
	ctx := context.Background()
	fileSystem := afero.NewMemMapFs()
	c := catalog.New()

	v := newTestViper(t, initRenderFlags, map[string]string{})
	out, err := renderInput(ctx, v, c, fileSystem, []string{"weblogic/jta"}, template.Parameters{
		"cargo.weblogic.domain":     "base_domain",
		"cargo.transaction.timeout": "300",
	})
	require.NoError(t, err)
	assert.Equal(t, "cd('/JTA/base_domain')\nset('TimeoutSeconds', 300)\n", out)

	_, err = renderInput(ctx, v, c, fileSystem, []string{"weblogic/jta"}, template.Parameters{})
	var missing *template.MissingParametersError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"cargo.transaction.timeout", "cargo.weblogic.domain"}, missing.Names)

	require.NoError(t, afero.WriteFile(fileSystem, "/plan.yaml", []byte("dialect: wlst\nsteps:\n  - template: weblogic/jta\n"), 0600))
	v = newTestViper(t, initRenderFlags, map[string]string{flagPlan: "/plan.yaml"})
	out, err = renderInput(ctx, v, c, fileSystem, []string{}, template.Parameters{
		"cargo.weblogic.domain":     "base_domain",
		"cargo.transaction.timeout": "300",
	})
	require.NoError(t, err)
	assert.Equal(t, "cd('/JTA/base_domain')\nset('TimeoutSeconds', 300)\ndumpStack()\n", out)
}

func TestInitPlanTemplateFile(t *testing.T) {
	ctx := context.Background()
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fileSystem, "/custom.py", []byte("print '@message@'\n"), 0600))

	v := newTestViper(t, initRunFlags, map[string]string{
		flagTemplateFile: "/custom.py",
		flagDialect:      "wsadmin",
		flagWsadminlib:   "/opt/wsadminlib.py",
	})
	p, getter, err := initPlan(v, catalog.New(), fileSystem, []string{})
	require.NoError(t, err)
	assert.Equal(t, dialect.Wsadmin, p.Dialect)
	assert.Equal(t, "/opt/wsadminlib.py", p.Wsadminlib)

	tpl, err := getter.Get(ctx, "/custom.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"message"}, tpl.Placeholders())
}

func TestInitPlanTemplateName(t *testing.T) {
	v := newTestViper(t, initRunFlags, map[string]string{})
	p, _, err := initPlan(v, catalog.New(), afero.NewMemMapFs(), []string{"weblogic/domain_shutdown"})
	require.NoError(t, err)
	assert.Equal(t, dialect.WLST, p.Dialect)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, "weblogic/domain_shutdown", p.Steps[0].Template)
}

func TestInitTemplateRoot(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	root, err := initTemplateRoot(fileSystem, "s3://templates/adminscript", nil)
	require.NoError(t, err)
	assert.NotNil(t, root)

	root, err = initTemplateRoot(fileSystem, "/etc/adminscript/templates", nil)
	require.NoError(t, err)
	assert.NotNil(t, root)
}

func TestExecuteRender(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fileSystem, "/domain.properties", []byte("cargo.weblogic.domain=base_domain\ncargo.transaction.timeout=300\n"), 0600))
	app, stdout, stderr := newTestApplication(fileSystem, &fakeRunner{fs: fileSystem})

	code := execute(context.Background(), app, []string{"render", "weblogic/jta", "-f", "/domain.properties", "-o", "/jta.py"})
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Rendered script")

	data, err := afero.ReadFile(fileSystem, "/jta.py")
	require.NoError(t, err)
	assert.Equal(t, "cd('/JTA/base_domain')\nset('TimeoutSeconds', 300)\n", string(data))
}

func TestExecuteRenderStdout(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	app, stdout, stderr := newTestApplication(fileSystem, &fakeRunner{fs: fileSystem})

	code := execute(context.Background(), app, []string{"render", "weblogic/jta", "-p", "cargo.weblogic.domain=base_domain", "-p", "cargo.transaction.timeout=300"})
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "cd('/JTA/base_domain')\nset('TimeoutSeconds', 300)\n", stdout.String())
}

func TestExecuteCheckMissing(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	app, stdout, stderr := newTestApplication(fileSystem, &fakeRunner{fs: fileSystem})

	code := execute(context.Background(), app, []string{"check", "weblogic/jta", "-p", "cargo.weblogic.domain=base_domain"})
	assert.Equal(t, 1, code)
	assert.Equal(t, "cargo.transaction.timeout\n", stdout.String())
	assert.True(t, strings.HasPrefix(stderr.String(), "adminscript: "))
}

func TestExecuteMissingTemplateRoot(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	app, _, stderr := newTestApplication(fileSystem, &fakeRunner{fs: fileSystem})

	code := execute(context.Background(), app, []string{"templates", "list", "-t", "/etc/adminscript/templates"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "/etc/adminscript/templates")
}

func TestExecuteRunExitCode(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	runner := &fakeRunner{fs: fileSystem, code: 3}
	app, _, stderr := newTestApplication(fileSystem, runner)

	code := execute(context.Background(), app, []string{
		"run", "weblogic/jta",
		"--weblogic-home", "/opt/wls",
		"--temp-dir", "/tmp/adminscript",
		"-p", "cargo.weblogic.domain=base_domain",
		"-p", "cargo.transaction.timeout=300",
	})
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr.String(), "interpreter exited with code 3")

	require.Len(t, runner.commands, 1)
	assert.Equal(t, "java", runner.commands[0].Path)
	assert.Contains(t, runner.commands[0].Args, "weblogic.WLST")
	require.Len(t, runner.scripts, 1)
	assert.True(t, strings.HasSuffix(runner.scripts[0], "dumpStack()\n"))
	assert.Contains(t, runner.scripts[0], "cd('/JTA/base_domain')")
}

func TestExecuteVersion(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	app, stdout, _ := newTestApplication(fileSystem, &fakeRunner{fs: fileSystem})

	assert.Equal(t, 0, execute(context.Background(), app, []string{"version"}))
	assert.Equal(t, AdminscriptVersion+"\n", stdout.String())
}
