package train

import (
	"log/slog"

	"github.com/hupe1980/ahipix/artifact"
	"github.com/hupe1980/ahipix/train"
	"github.com/spf13/cobra"
)

var (
	inputDir string
	modelDir string
	epochs   int
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "train",
	Short: "Run the placeholder training step over fetched data",
	Long: `Train inspects the fetch step's output directory, logs file counts and
the manifest's frame count, and records a placeholder model artifact.
Replace this step with real training logic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := artifact.NewLocalStore(inputDir)
		if err != nil {
			return err
		}
		model, err := artifact.NewLocalStore(modelDir)
		if err != nil {
			return err
		}

		info, err := train.New(data, model, nil, nil).Run(ctx, epochs)
		if err != nil {
			return err
		}
		slog.Info("training complete", "inputFiles", info.InputFiles, "totalFrames", info.TotalFrames)
		return nil
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVar(&inputDir, "input-dir", "/opt/ml/input/data/training", "directory holding the fetch step's output")
	flags.StringVar(&modelDir, "model-dir", "/opt/ml/model", "directory receiving the model artifact")
	flags.IntVar(&epochs, "epochs", 1, "number of placeholder epochs to log")
}
