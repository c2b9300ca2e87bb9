package fetch

import (
	"log/slog"

	"github.com/hupe1980/ahipix/artifact"
	"github.com/hupe1980/ahipix/fetcher"
	"github.com/hupe1980/ahipix/imaging"
	"github.com/spf13/cobra"
)

var (
	datastoreID string
	imageSetID  string
	outputDir   string
	maxFrames   int
	region      string
	rateLimit   float64
	uploadURL   string
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all image frames of an image set and write a manifest",
	Long: `Fetch resolves the image set's metadata, retrieves every image frame
from AWS HealthImaging and writes the payloads, the verbatim metadata
document and a per-frame manifest into the output directory.

Individual frame failures are recorded in the manifest and do not fail the
run; only setup failures (metadata resolution, unwritable output) do.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := artifact.NewLocalStore(outputDir)
		if err != nil {
			return err
		}

		client, err := imaging.NewClient(ctx, region)
		if err != nil {
			return err
		}

		f := fetcher.New(client, store,
			fetcher.WithMaxFrames(maxFrames),
			fetcher.WithRateLimit(rateLimit),
		)

		m, err := f.Run(ctx, datastoreID, imageSetID)
		if err != nil {
			return err
		}
		slog.Info("run finished", "outputDir", outputDir, "frames", len(m.Frames), "failed", m.Failed())

		if uploadURL != "" {
			remote, err := storeFromURL(ctx, uploadURL, region)
			if err != nil {
				return err
			}
			if err := artifact.Copy(ctx, remote, store); err != nil {
				return err
			}
			slog.Info("uploaded run output", "dest", uploadURL)
		}
		return nil
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVar(&datastoreID, "datastore-id", "", "HealthImaging datastore ID")
	flags.StringVar(&imageSetID, "image-set-id", "", "HealthImaging image set ID")
	flags.StringVar(&outputDir, "output-dir", "/opt/ml/processing/output", "output directory for fetched frames")
	flags.IntVar(&maxFrames, "max-frames", 0, "maximum number of frames to fetch (0 = all)")
	flags.StringVar(&region, "region", "", "AWS region (default AWS_REGION, then us-east-1)")
	flags.Float64Var(&rateLimit, "rate-limit", 0, "max frame fetches per second (0 = unlimited)")
	flags.StringVar(&uploadURL, "upload", "", "copy run output to s3://bucket/prefix or s3+http(s)://host/bucket/prefix")

	_ = Cmd.MarkFlagRequired("datastore-id")
	_ = Cmd.MarkFlagRequired("image-set-id")
}
