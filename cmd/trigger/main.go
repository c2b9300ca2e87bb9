package trigger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/hupe1980/ahipix/trigger"
	"github.com/spf13/cobra"
)

var (
	eventPath    string
	pipelineName string
	region       string
	dryRun       bool
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "trigger",
	Short: "Start a pipeline execution from an image-set state change event",
	Long: `Trigger parses an EventBridge image-set state change event and, when the
image set reached ACTIVE, starts a pipeline execution carrying the
datastore and image set IDs as pipeline parameters. Other events are
ignored with exit code 0.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := readEvent(eventPath)
		if err != nil {
			return err
		}

		ev, err := trigger.ParseEvent(data)
		if err != nil {
			return err
		}

		if !ev.ShouldStart() {
			slog.Info("ignoring event",
				"source", ev.Source, "state", ev.Detail.State, "imageSetID", ev.Detail.ImageSetID)
			return nil
		}

		if dryRun {
			slog.Info("dry run, not starting pipeline",
				"pipeline", pipelineName, "datastoreID", ev.Detail.DatastoreID, "imageSetID", ev.Detail.ImageSetID)
			return nil
		}

		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
		if err != nil {
			return err
		}

		starter := trigger.NewStarter(sagemaker.NewFromConfig(cfg), pipelineName, nil)
		arn, err := starter.Start(ctx, ev)
		if err != nil {
			return err
		}
		fmt.Println(arn)
		return nil
	},
}

func readEvent(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	flags := Cmd.Flags()
	flags.StringVar(&eventPath, "event", "-", "path to the event JSON, or - for stdin")
	flags.StringVar(&pipelineName, "pipeline-name", os.Getenv("PIPELINE_NAME"), "SageMaker pipeline to start (default $PIPELINE_NAME)")
	flags.StringVar(&region, "region", "", "AWS region (default from environment)")
	flags.BoolVar(&dryRun, "dry-run", false, "parse and decide, but do not start the pipeline")
}
