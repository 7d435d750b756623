// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deptofdefense/adminscript/pkg/catalog"
	"github.com/deptofdefense/adminscript/pkg/dialect"
	"github.com/deptofdefense/adminscript/pkg/fs"
	"github.com/deptofdefense/adminscript/pkg/invoker"
	"github.com/deptofdefense/adminscript/pkg/lfs"
	"github.com/deptofdefense/adminscript/pkg/log"
	"github.com/deptofdefense/adminscript/pkg/params"
	"github.com/deptofdefense/adminscript/pkg/plan"
	"github.com/deptofdefense/adminscript/pkg/s3fs"
	"github.com/deptofdefense/adminscript/pkg/template"
)

const (
	AdminscriptVersion = "1.0.0"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	SupportedListFormats = []string{
		FormatText,
		FormatJSON,
	}
)

func stringSliceContains(stringSlice []string, value string) bool {
	for _, x := range stringSlice {
		if value == x {
			return true
		}
	}
	return false
}

const (
	flagTemplateRoots = "template-roots"
	//
	flagTemplateFile = "file"
	flagPlan         = "plan"
	flagDialect      = "dialect"
	flagParamsFiles  = "params-files"
	flagParams       = "param"
	flagOutput       = "output"
	flagWsadminlib   = "wsadminlib"
	//
	flagJavaPath     = "java"
	flagJavaOptions  = "java-options"
	flagWeblogicHome = "weblogic-home"
	flagWLSTPath     = "wlst"
	//
	flagWebsphereHome   = "websphere-home"
	flagProfile         = "profile"
	flagMinHeap         = "min-heap"
	flagMaxHeap         = "max-heap"
	flagOffline         = "offline"
	flagWsadminUser     = "wsadmin-user"
	flagWsadminPassword = "wsadmin-password"
	//
	flagTempDir    = "temp-dir"
	flagKeepScript = "keep-script"
	flagTimeout    = "timeout"
	//
	flagFormat = "format"
	//
	flagLogPath = "log"
	flagLogPerm = "log-perm"
	//
	flagDryRun = "dry-run"
	//
	flagAWSPartition          = "aws-partition"
	flagAWSProfile            = "aws-profile"
	flagAWSDefaultRegion      = "aws-default-region"
	flagAWSRegion             = "aws-region"
	flagAWSAccessKeyID        = "aws-access-key-id"
	flagAWSSecretAccessKey    = "aws-secret-access-key"
	flagAWSSessionToken       = "aws-session-token"
	flagAWSInsecureSkipVerify = "aws-insecure-skip-verify"
	flagAWSS3Endpoint         = "aws-s3-endpoint"
	flagAWSS3UsePathStyle     = "aws-s3-use-path-style"
)

func initCatalogFlags(flag *pflag.FlagSet) {
	flag.StringSliceP(flagTemplateRoots, "t", []string{}, "template roots searched before the built-in templates, as local directories or s3://bucket/prefix")
	initAWSFlags(flag)
}

func initInputFlags(flag *pflag.FlagSet) {
	flag.String(flagTemplateFile, "", "path to a template file used instead of a named template")
	flag.String(flagPlan, "", "path to a plan composing multiple templates into one script")
	flag.String(flagDialect, "", "dialect of the template file.  One of: "+strings.Join(dialectNames(), ","))
	flag.StringSliceP(flagParamsFiles, "f", []string{}, "parameter files in .properties, .yaml, .json, or .toml format.  Later files override earlier ones.")
	flag.StringArrayP(flagParams, "p", []string{}, "parameter in the format name=value.  Overrides parameter files.")
	flag.String(flagWsadminlib, "", "path to wsadminlib.py imported at the start of wsadmin scripts")
	initCatalogFlags(flag)
}

func initLogFlags(flag *pflag.FlagSet) {
	flag.StringP(flagLogPath, "l", "-", "path to the log output.  Defaults to stderr.")
	flag.String(flagLogPerm, "0600", "file permissions for log output file as unix file mode.")
}

func initRenderFlags(flag *pflag.FlagSet) {
	initInputFlags(flag)
	flag.StringP(flagOutput, "o", "-", "path to the rendered script.  Defaults to stdout.")
	initLogFlags(flag)
}

func initCheckFlags(flag *pflag.FlagSet) {
	initInputFlags(flag)
	initLogFlags(flag)
}

func initRunFlags(flag *pflag.FlagSet) {
	initInputFlags(flag)
	flag.String(flagJavaPath, "java", "java executable used to start WLST")
	flag.StringArray(flagJavaOptions, []string{}, "options passed to the JVM running WLST")
	flag.String(flagWeblogicHome, "", "WebLogic server directory containing server/lib/weblogic.jar")
	flag.String(flagWLSTPath, "", "path to wlst.sh, used instead of java when set")
	flag.String(flagWebsphereHome, "", "WebSphere installation directory containing bin/wsadmin.sh")
	flag.String(flagProfile, "", "WebSphere profile name")
	flag.Int(flagMinHeap, 0, "minimum heap size of wsadmin in megabytes")
	flag.Int(flagMaxHeap, 0, "maximum heap size of wsadmin in megabytes")
	flag.Bool(flagOffline, false, "run wsadmin without connecting to a server")
	flag.String(flagWsadminUser, "", "user for wsadmin connections")
	flag.String(flagWsadminPassword, "", "password for wsadmin connections")
	flag.String(flagTempDir, "", "directory where scripts are written.  Defaults to the system temporary directory.")
	flag.Bool(flagKeepScript, false, "keep the script after the interpreter exits")
	flag.String(flagTimeout, "", "maximum duration of the interpreter run, such as 10m.  No limit by default.")
	flag.Bool(flagDryRun, false, "write the script and show the command without running it")
	initLogFlags(flag)
}

func initAWSFlags(flag *pflag.FlagSet) {
	flag.String(flagAWSPartition, "", "AWS Partition")
	flag.String(flagAWSProfile, "", "AWS Profile")
	flag.String(flagAWSDefaultRegion, "", "AWS Default Region")
	flag.String(flagAWSRegion, "", "AWS Region (overrides default region)")
	flag.String(flagAWSAccessKeyID, "", "AWS Access Key ID")
	flag.String(flagAWSSecretAccessKey, "", "AWS Secret Access Key")
	flag.String(flagAWSSessionToken, "", "AWS Session Token")
	flag.Bool(flagAWSInsecureSkipVerify, false, "Skip verification of AWS TLS certificate")
	flag.String(flagAWSS3Endpoint, "", "AWS S3 Endpoint URL")
	flag.Bool(flagAWSS3UsePathStyle, false, "Use path-style addressing (default is to use virtual-host-style addressing)")
}

func dialectNames() []string {
	names := []string{}
	for _, d := range dialect.Dialects() {
		names = append(names, d.String())
	}
	return names
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	return v, nil
}

// envName returns the environment variable that overrides a flag.
func envName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// getStringArray returns the values of a repeatable flag.
// When the flag is not set, its environment variable holds one value per line, since values may contain commas.
func getStringArray(cmd *cobra.Command, name string) ([]string, error) {
	if !cmd.Flags().Changed(name) {
		if str, ok := os.LookupEnv(envName(name)); ok {
			values := []string{}
			for _, line := range strings.Split(str, "\n") {
				if line = strings.TrimSuffix(line, "\r"); len(line) > 0 {
					values = append(values, line)
				}
			}
			return values, nil
		}
	}
	values, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return nil, fmt.Errorf("error getting values of flag %q: %w", name, err)
	}
	return values, nil
}

func initS3Client(v *viper.Viper) *s3.Client {
	accessKeyID := v.GetString(flagAWSAccessKeyID)
	secretAccessKey := v.GetString(flagAWSSecretAccessKey)
	sessionToken := v.GetString(flagAWSSessionToken)
	usePathStyle := v.GetBool(flagAWSS3UsePathStyle)

	region := v.GetString(flagAWSRegion)
	if len(region) == 0 {
		if defaultRegion := v.GetString(flagAWSDefaultRegion); len(defaultRegion) > 0 {
			region = defaultRegion
		}
	}

	config := aws.Config{
		RetryMaxAttempts: 3,
		Region:           region,
	}

	partition := v.GetString(flagAWSPartition)
	if len(partition) == 0 {
		partition = "aws"
	}

	if e := v.GetString(flagAWSS3Endpoint); len(e) > 0 {
		config.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(func(service string, region string, options ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				endpoint := aws.Endpoint{
					PartitionID:   partition,
					URL:           e,
					SigningRegion: region,
				}
				return endpoint, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
	}

	if len(accessKeyID) > 0 && len(secretAccessKey) > 0 {
		config.Credentials = credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			sessionToken)
	}

	insecureSkipVerify := v.GetBool(flagAWSInsecureSkipVerify)
	if insecureSkipVerify {
		config.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		}
	}

	return s3.NewFromConfig(config, func(o *s3.Options) {
		o.UsePathStyle = usePathStyle
	})
}

func checkCatalogConfig(v *viper.Viper, fileSystem afero.Fs) error {
	for _, root := range v.GetStringSlice(flagTemplateRoots) {
		if len(root) == 0 {
			return fmt.Errorf("template root is empty")
		}
		if s3fs.IsURI(root) {
			if _, _, err := s3fs.ParseURI(root); err != nil {
				return fmt.Errorf("invalid template root: %w", err)
			}
			continue
		}
		fi, err := fileSystem.Stat(root)
		if err != nil {
			return fmt.Errorf("invalid template root %q: %w", root, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("invalid template root %q: not a directory", root)
		}
	}
	return nil
}

func checkLogConfig(v *viper.Viper) error {
	logPath := v.GetString(flagLogPath)
	if len(logPath) == 0 {
		return fmt.Errorf("log path is missing")
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	return nil
}

// checkInputConfig checks that exactly one of a template name, a template file, or a plan is given.
func checkInputConfig(v *viper.Viper, fileSystem afero.Fs, args []string) error {
	inputs := 0
	if len(args) > 0 {
		inputs++
	}
	templateFile := v.GetString(flagTemplateFile)
	if len(templateFile) > 0 {
		inputs++
	}
	if len(v.GetString(flagPlan)) > 0 {
		inputs++
	}
	if inputs == 0 {
		return fmt.Errorf("a template name, template file, or plan is required")
	}
	if inputs > 1 {
		return fmt.Errorf("only one of a template name, template file, or plan may be given")
	}
	if len(args) > 0 && !catalog.CheckName(args[0]) {
		return fmt.Errorf("invalid template name %q, expecting vendor/operation", args[0])
	}
	if str := v.GetString(flagDialect); len(str) > 0 {
		if _, err := dialect.Parse(str); err != nil {
			return err
		}
	}
	for _, p := range v.GetStringSlice(flagParamsFiles) {
		if _, err := params.FormatForPath(p); err != nil {
			return err
		}
	}
	if err := checkCatalogConfig(v, fileSystem); err != nil {
		return err
	}
	return checkLogConfig(v)
}

func checkRunConfig(v *viper.Viper, fileSystem afero.Fs, args []string) error {
	if err := checkInputConfig(v, fileSystem, args); err != nil {
		return err
	}
	if len(v.GetString(flagTemplateFile)) > 0 && len(v.GetString(flagDialect)) == 0 {
		return fmt.Errorf("dialect is required when running a template file")
	}
	minHeap := v.GetInt(flagMinHeap)
	if minHeap < 0 {
		return fmt.Errorf("invalid minimum heap %d, must be greater than or equal to zero", minHeap)
	}
	maxHeap := v.GetInt(flagMaxHeap)
	if maxHeap < 0 {
		return fmt.Errorf("invalid maximum heap %d, must be greater than or equal to zero", maxHeap)
	}
	if minHeap > 0 && maxHeap > 0 && minHeap > maxHeap {
		return fmt.Errorf("invalid heap sizes, minimum heap %d is greater than maximum heap %d", minHeap, maxHeap)
	}
	if len(v.GetString(flagWsadminPassword)) > 0 && len(v.GetString(flagWsadminUser)) == 0 {
		return fmt.Errorf("wsadmin user is required when a wsadmin password is given")
	}
	if timeout := v.GetString(flagTimeout); len(timeout) > 0 {
		timeoutDuration, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("error parsing timeout: %w", err)
		}
		if timeoutDuration < 0 {
			return fmt.Errorf("invalid timeout %q, must be greater than or equal to zero", timeoutDuration)
		}
	}
	return nil
}

func checkListConfig(v *viper.Viper, fileSystem afero.Fs) error {
	format := v.GetString(flagFormat)
	if !stringSliceContains(SupportedListFormats, format) {
		return fmt.Errorf("invalid format %q, expecting one of: %s", format, strings.Join(SupportedListFormats, ","))
	}
	return checkCatalogConfig(v, fileSystem)
}

func newTraceID() string {
	traceID, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return traceID.String()
}

func initLogger(fileSystem afero.Fs, stderr io.Writer, path string, perm string) (*log.SimpleLogger, error) {

	if path == "-" {
		return log.NewSimpleLogger(stderr), nil
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := fileSystem.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLogger(f), nil
}

func initTemplateRoot(fileSystem afero.Fs, root string, s3Client *s3.Client) (fs.FileSystem, error) {
	if s3fs.IsURI(root) {
		bucket, prefix, err := s3fs.ParseURI(root)
		if err != nil {
			return nil, err
		}
		return s3fs.NewS3FileSystem(bucket, prefix, s3Client), nil
	}
	return lfs.NewLocalFileSystemFromFs(fileSystem, root), nil
}

func initCatalog(ctx context.Context, v *viper.Viper, fileSystem afero.Fs) (*catalog.Catalog, error) {
	roots := v.GetStringSlice(flagTemplateRoots)

	s3ClientNeeded := false
	for _, root := range roots {
		if s3fs.IsURI(root) {
			s3ClientNeeded = true
			break
		}
	}

	var s3Client *s3.Client

	if s3ClientNeeded {
		s3Client = initS3Client(v)
	}

	overlays := make([]fs.FileSystem, 0, len(roots))
	for _, root := range roots {
		overlay, err := initTemplateRoot(fileSystem, root, s3Client)
		if err != nil {
			return nil, fmt.Errorf("error initializing template root %q: %w", root, err)
		}
		overlays = append(overlays, overlay)
	}

	c := catalog.New(overlays...)
	if err := c.CheckRoots(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// initParameters loads the parameter files in order and applies the --param assignments on top.
func initParameters(cmd *cobra.Command, v *viper.Viper, fileSystem afero.Fs) (template.Parameters, error) {
	fileParameters, err := params.LoadFiles(fileSystem, v.GetStringSlice(flagParamsFiles))
	if err != nil {
		return nil, err
	}
	values, err := getStringArray(cmd, flagParams)
	if err != nil {
		return nil, err
	}
	assignments, err := params.ParseAssignments(values)
	if err != nil {
		return nil, err
	}
	return template.Merge(fileParameters, assignments), nil
}

func initInvokerConfig(cmd *cobra.Command, v *viper.Viper) (*invoker.Config, error) {
	javaOptions, err := getStringArray(cmd, flagJavaOptions)
	if err != nil {
		return nil, err
	}
	config := &invoker.Config{
		JavaPath:      v.GetString(flagJavaPath),
		JavaOptions:   javaOptions,
		WeblogicHome:  v.GetString(flagWeblogicHome),
		WLSTPath:      v.GetString(flagWLSTPath),
		WebsphereHome: v.GetString(flagWebsphereHome),
		Profile:       v.GetString(flagProfile),
		MinHeap:       v.GetInt(flagMinHeap),
		MaxHeap:       v.GetInt(flagMaxHeap),
		Offline:       v.GetBool(flagOffline),
		User:          v.GetString(flagWsadminUser),
		Password:      v.GetString(flagWsadminPassword),
		TempDir:       v.GetString(flagTempDir),
		KeepScript:    v.GetBool(flagKeepScript),
		DryRun:        v.GetBool(flagDryRun),
	}
	if timeout := v.GetString(flagTimeout); len(timeout) > 0 {
		timeoutDuration, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("error parsing timeout: %w", err)
		}
		config.Timeout = timeoutDuration
	}
	return config, nil
}

// templateFile serves a single parsed template file to plan composition.
type templateFile struct {
	template template.Template
}

func (f *templateFile) Get(ctx context.Context, name string) (template.Template, error) {
	return f.template, nil
}

// initPlan returns the plan and template source for the input given by flags or arguments.
func initPlan(v *viper.Viper, c *catalog.Catalog, fileSystem afero.Fs, args []string) (*plan.Plan, plan.TemplateGetter, error) {
	var p *plan.Plan
	var getter plan.TemplateGetter = c
	if planPath := v.GetString(flagPlan); len(planPath) > 0 {
		loaded, err := plan.LoadPlan(fileSystem, planPath)
		if err != nil {
			return nil, nil, err
		}
		p = loaded
	} else if templatePath := v.GetString(flagTemplateFile); len(templatePath) > 0 {
		d, err := dialect.Parse(v.GetString(flagDialect))
		if err != nil {
			return nil, nil, err
		}
		t, err := template.ParseFS(fileSystem, templatePath, templatePath)
		if err != nil {
			return nil, nil, err
		}
		p = &plan.Plan{Dialect: d, Steps: []plan.Step{{Template: templatePath}}}
		getter = &templateFile{template: t}
	} else {
		single, err := plan.ForTemplate(args[0])
		if err != nil {
			return nil, nil, err
		}
		p = single
	}
	if wsadminlib := v.GetString(flagWsadminlib); len(wsadminlib) > 0 {
		p.Wsadminlib = wsadminlib
	}
	return p, getter, nil
}

// renderInput renders a single template without preamble or trailer, or composes a plan.
func renderInput(ctx context.Context, v *viper.Viper, c *catalog.Catalog, fileSystem afero.Fs, args []string, parameters template.Parameters) (string, error) {
	if len(v.GetString(flagPlan)) > 0 {
		p, getter, err := initPlan(v, c, fileSystem, args)
		if err != nil {
			return "", err
		}
		return plan.Compose(ctx, getter, p, parameters)
	}
	var t template.Template
	if templatePath := v.GetString(flagTemplateFile); len(templatePath) > 0 {
		parsed, err := template.ParseFS(fileSystem, templatePath, templatePath)
		if err != nil {
			return "", err
		}
		t = parsed
	} else {
		found, err := c.Get(ctx, args[0])
		if err != nil {
			return "", err
		}
		t = found
	}
	b := &strings.Builder{}
	if err := t.Execute(b, parameters); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeOutput(fileSystem afero.Fs, stdout io.Writer, path string, str string) error {
	if path == "-" {
		_, err := io.WriteString(stdout, str)
		return err
	}
	err := afero.WriteFile(fileSystem, path, []byte(str), 0600)
	if err != nil {
		return fmt.Errorf("error writing output to %q: %w", path, err)
	}
	return nil
}

// application holds what the commands read from and write to.
type application struct {
	fileSystem afero.Fs
	runner     invoker.Runner
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCommand(app *application) *cobra.Command {

	fileSystem := app.fileSystem

	rootCommand := &cobra.Command{
		Use:                   `adminscript [flags]`,
		DisableFlagsInUseLine: true,
		Short:                 "adminscript renders and runs WebLogic WLST and WebSphere wsadmin scripts.",
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	rootCommand.SetOut(app.stdout)
	rootCommand.SetErr(app.stderr)

	renderCommand := &cobra.Command{
		Use:                   `render [flags] [vendor/operation]`,
		DisableFlagsInUseLine: true,
		Short:                 "render a template or plan into a script",
		Example: `render weblogic/datasource -f domain.properties -p cargo.datasource.password=
render --plan datasources.yaml -f domain.yaml -o datasources.py
render --file custom.py -p name=value`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if len(args) > 1 {
				return cmd.Usage()
			}

			if errConfig := checkInputConfig(v, fileSystem, args); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(fileSystem, cmd.ErrOrStderr(), v.GetString(flagLogPath), v.GetString(flagLogPerm))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			traceID := newTraceID()

			c, err := initCatalog(cmd.Context(), v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing catalog: %w", err)
			}

			parameters, err := initParameters(cmd, v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing parameters: %w", err)
			}

			script, err := renderInput(cmd.Context(), v, c, fileSystem, args, parameters)
			if err != nil {
				return err
			}

			output := v.GetString(flagOutput)
			if err := writeOutput(fileSystem, cmd.OutOrStdout(), output, script); err != nil {
				return err
			}

			_ = logger.Log("Rendered script", map[string]interface{}{
				"adminscript_trace_id": traceID,
				"args":                 args,
				"plan":                 v.GetString(flagPlan),
				"file":                 v.GetString(flagTemplateFile),
				"output":               output,
				"parameters":           len(parameters),
			})

			return nil
		},
	}
	initRenderFlags(renderCommand.Flags())

	checkCommand := &cobra.Command{
		Use:                   `check [flags] [vendor/operation]`,
		DisableFlagsInUseLine: true,
		Short:                 "check that a template or plan has a value for every placeholder",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if len(args) > 1 {
				return cmd.Usage()
			}

			if errConfig := checkInputConfig(v, fileSystem, args); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(fileSystem, cmd.ErrOrStderr(), v.GetString(flagLogPath), v.GetString(flagLogPerm))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			c, err := initCatalog(cmd.Context(), v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing catalog: %w", err)
			}

			parameters, err := initParameters(cmd, v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing parameters: %w", err)
			}

			_, err = renderInput(cmd.Context(), v, c, fileSystem, args, parameters)
			if err != nil {
				var missingParametersError *template.MissingParametersError
				if errors.As(err, &missingParametersError) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(missingParametersError.Names, "\n"))
				}
				return err
			}

			_ = logger.Log("Parameters are complete", map[string]interface{}{
				"adminscript_trace_id": newTraceID(),
				"args":                 args,
				"plan":                 v.GetString(flagPlan),
				"file":                 v.GetString(flagTemplateFile),
			})

			return nil
		},
	}
	initCheckFlags(checkCommand.Flags())

	runCommand := &cobra.Command{
		Use:                   `run [flags] [vendor/operation]`,
		DisableFlagsInUseLine: true,
		Short:                 "render a template or plan and run it with the vendor interpreter",
		Example: `run weblogic/jta --weblogic-home /opt/oracle/wlserver -f domain.properties
run --plan websphere.yaml --websphere-home /opt/IBM/WebSphere/AppServer --profile AppSrv01 --offline`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if len(args) > 1 {
				return cmd.Usage()
			}

			if errConfig := checkRunConfig(v, fileSystem, args); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(fileSystem, cmd.ErrOrStderr(), v.GetString(flagLogPath), v.GetString(flagLogPerm))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			traceID := newTraceID()

			c, err := initCatalog(cmd.Context(), v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing catalog: %w", err)
			}

			parameters, err := initParameters(cmd, v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing parameters: %w", err)
			}

			p, getter, err := initPlan(v, c, fileSystem, args)
			if err != nil {
				return err
			}

			script, err := plan.Compose(ctx, getter, p, parameters)
			if err != nil {
				return err
			}

			config, err := initInvokerConfig(cmd, v)
			if err != nil {
				return fmt.Errorf("error initializing invoker: %w", err)
			}

			_ = logger.Log("Running script", map[string]interface{}{
				"adminscript_trace_id": traceID,
				"dialect":              p.Dialect.String(),
				"steps":                len(p.Steps),
			})

			i := invoker.New(config, fileSystem, app.runner, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
			result, err := i.Run(ctx, p.Dialect, script)
			if err != nil {
				return err
			}

			if len(result.ScriptPath) > 0 {
				_ = logger.Log("Kept script", map[string]interface{}{
					"adminscript_trace_id": traceID,
					"path":                 result.ScriptPath,
				})
			}

			return nil
		},
	}
	initRunFlags(runCommand.Flags())

	templatesCommand := &cobra.Command{
		Use:                   `templates`,
		DisableFlagsInUseLine: true,
		Short:                 "inspect the available templates",
		SilenceErrors:         true,
		SilenceUsage:          true,
	}

	listTemplatesCommand := &cobra.Command{
		Use:                   `list [flags]`,
		DisableFlagsInUseLine: true,
		Short:                 "list the available templates",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}
			if len(args) > 0 {
				return cmd.Usage()
			}
			if errConfig := checkListConfig(v, fileSystem); errConfig != nil {
				return errConfig
			}
			c, err := initCatalog(cmd.Context(), v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing catalog: %w", err)
			}
			entries, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			if v.GetString(flagFormat) == FormatJSON {
				b, err := json.Marshal(entries)
				if err != nil {
					return fmt.Errorf("error marshaling templates: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			for _, entry := range entries {
				source := "builtin"
				if !entry.Builtin {
					source = "overlay"
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), entry.Name+"\t"+entry.Dialect.String()+"\t"+source); err != nil {
					return err
				}
			}
			return nil
		},
	}
	listTemplatesCommand.Flags().String(flagFormat, FormatText, "output format.  One of: "+strings.Join(SupportedListFormats, ","))
	initCatalogFlags(listTemplatesCommand.Flags())

	showTemplateCommand := &cobra.Command{
		Use:                   `show [flags] vendor/operation`,
		DisableFlagsInUseLine: true,
		Short:                 "show the source of a template",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}
			if len(args) != 1 {
				return cmd.Usage()
			}
			if errConfig := checkCatalogConfig(v, fileSystem); errConfig != nil {
				return errConfig
			}
			c, err := initCatalog(cmd.Context(), v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing catalog: %w", err)
			}
			source, err := c.Source(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(source)
			return err
		},
	}
	initCatalogFlags(showTemplateCommand.Flags())

	showPlaceholdersCommand := &cobra.Command{
		Use:                   `placeholders [flags] vendor/operation`,
		DisableFlagsInUseLine: true,
		Short:                 "show the placeholders of a template",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}
			if len(args) != 1 {
				return cmd.Usage()
			}
			if errConfig := checkCatalogConfig(v, fileSystem); errConfig != nil {
				return errConfig
			}
			c, err := initCatalog(cmd.Context(), v, fileSystem)
			if err != nil {
				return fmt.Errorf("error initializing catalog: %w", err)
			}
			t, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(t.Placeholders(), "\n"))
			return err
		},
	}
	initCatalogFlags(showPlaceholdersCommand.Flags())

	templatesCommand.AddCommand(listTemplatesCommand, showTemplateCommand, showPlaceholdersCommand)

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), AdminscriptVersion)
			return err
		},
	}

	rootCommand.AddCommand(renderCommand, checkCommand, runCommand, templatesCommand, versionCommand)

	return rootCommand
}

// execute runs the command line and returns the exit code.
// A script that exits with a non-zero code passes that code through.
func execute(ctx context.Context, app *application, args []string) int {
	rootCommand := newRootCommand(app)
	rootCommand.SetArgs(args)
	if err := rootCommand.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(app.stderr, "adminscript: "+err.Error())
		var exitError *invoker.ExitError
		if errors.As(err, &exitError) {
			return exitError.Code
		}
		_, _ = fmt.Fprintln(app.stderr, "Try adminscript --help for more information.")
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), &application{
		fileSystem: afero.NewOsFs(),
		runner:     invoker.NewExecRunner(),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}, os.Args[1:]))
}
