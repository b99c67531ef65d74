package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/ytget/image-predictor/internal/config"
	"github.com/ytget/image-predictor/internal/intake"
	"github.com/ytget/image-predictor/internal/model"
	"github.com/ytget/image-predictor/internal/predict"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const AppName = "predict"

// errUsage marks invalid invocations (exit code 2)
var errUsage = errors.New("usage error")

// cliPrediction is one row of the -json output
type cliPrediction struct {
	Rank       int     `json:"rank"`
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	Percent    string  `json:"percent"`
}

// cliReport is the -json output document
type cliReport struct {
	ID          string          `json:"id"`
	File        string          `json:"file"`
	Endpoint    string          `json:"endpoint"`
	Model       string          `json:"model"`
	WireModel   string          `json:"wire_model"`
	DurationMS  int64           `json:"duration_ms"`
	Predictions []cliPrediction `json:"predictions"`
	Error       string          `json:"error,omitempty"`
	Category    string          `json:"category,omitempty"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run classifies one image and writes the ranked results to stdout
func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet(AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)

	file := flags.String("file", "", "image file to classify (required)")
	modelName := flags.String("model", string(model.DefaultModel()), "classifier: resnet50 or efficientnet")
	endpoint := flags.String("endpoint", "", "prediction endpoint URL (default from environment or "+config.DefaultBaseURL+config.DefaultPredictPath+")")
	envFile := flags.String("env", config.DefaultEnvFile, "optional .env file with overrides")
	jsonOutput := flags.Bool("json", false, "print the result as JSON")

	if err := flags.Parse(args); err != nil {
		return errUsage
	}
	if *file == "" {
		fmt.Fprintln(stderr, "-file is required")
		flags.Usage()
		return errUsage
	}

	fmt.Fprintf(stderr, "%s v%s\n", AppName, version)

	env, err := config.LoadEnv(*envFile)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load environment: %v\n", err)
		return err
	}
	target := resolveEndpoint(*endpoint, env)
	wireMap := config.DefaultWireMap().Merge(env.ModelMap)

	session := model.NewSession()
	if err := session.SelectModel(model.ModelID(*modelName)); err != nil {
		fmt.Fprintln(stderr, err)
		return errUsage
	}

	candidate, err := intake.FromPath(*file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	img, err := intake.Accept(candidate)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	session.AcceptImage(img)

	submission, err := session.BeginSubmission()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	svc := predict.NewService(target, wireMap)
	outcome := svc.Execute(context.Background(), submission, svc.RequestFor(submission))
	if outcome.Succeeded() {
		session.Complete(outcome.Results)
	} else {
		session.Fail(outcome.Err)
	}

	if *jsonOutput {
		if err := writeJSON(stdout, *file, outcome, session.Rows()); err != nil {
			return err
		}
	} else {
		writeText(stdout, stderr, outcome, session.Rows())
	}
	return outcome.Err
}

// resolveEndpoint picks the flag, then the environment, then the defaults
func resolveEndpoint(flagValue string, env config.Env) string {
	if flagValue != "" {
		return flagValue
	}
	base := config.DefaultBaseURL
	if env.BaseURL != "" {
		base = config.NormalizeBaseURL(env.BaseURL)
	}
	path := config.DefaultPredictPath
	if env.PredictPath != "" {
		path = config.NormalizePredictPath(env.PredictPath)
	}
	return config.JoinEndpoint(base, path)
}

func writeText(stdout, stderr io.Writer, outcome predict.Outcome, rows []model.RankedRow) {
	if outcome.Err != nil {
		fmt.Fprintf(stderr, "prediction failed (%s): %v\n", model.CategoryOf(outcome.Err), outcome.Err)
		return
	}

	fmt.Fprintf(stdout, "Prediction results (%s)\n", outcome.Submission.Model.Heading())
	if len(rows) == 0 {
		fmt.Fprintln(stdout, "no predictions")
	}
	for _, row := range rows {
		fmt.Fprintln(stdout, row.String())
	}
}

func writeJSON(stdout io.Writer, file string, outcome predict.Outcome, rows []model.RankedRow) error {
	report := cliReport{
		ID:          outcome.Submission.ID,
		File:        file,
		Endpoint:    outcome.Endpoint,
		Model:       string(outcome.Submission.Model),
		WireModel:   outcome.WireModel,
		DurationMS:  outcome.Duration.Round(time.Millisecond).Milliseconds(),
		Predictions: make([]cliPrediction, 0, len(rows)),
	}
	for _, row := range rows {
		report.Predictions = append(report.Predictions, cliPrediction{
			Rank:       row.Rank,
			Class:      row.Label,
			Confidence: row.Confidence,
			Percent:    row.PercentText(),
		})
	}
	if outcome.Err != nil {
		report.Error = outcome.Err.Error()
		report.Category = model.CategoryOf(outcome.Err).String()
	}

	data, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}
