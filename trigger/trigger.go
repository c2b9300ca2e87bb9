// Package trigger consumes image-set state change notifications and starts
// pipeline executions for image sets that became active.
//
// Event routing (the EventBridge rule itself) lives in infrastructure; this
// package is only the consumer side: parse the envelope, decide, start.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/hupe1980/ahipix/codec"
)

const (
	eventSource = "aws.medical-imaging"
	stateActive = "ACTIVE"

	paramDatastoreID = "DatastoreId"
	paramImageSetID  = "ImageSetId"
)

// ErrNoPipeline is returned when no pipeline name is configured.
var ErrNoPipeline = errors.New("pipeline name must not be empty")

// Event is the EventBridge envelope of a HealthImaging image set state
// change. Vendor fields outside the contract are ignored.
type Event struct {
	Source     string `json:"source"`
	DetailType string `json:"detail-type"`
	Detail     Detail `json:"detail"`
}

// Detail carries the image set coordinates and its new state.
type Detail struct {
	DatastoreID string `json:"datastoreId"`
	ImageSetID  string `json:"imageSetId"`
	State       string `json:"state"`
}

// ParseEvent decodes an EventBridge event payload.
func ParseEvent(data []byte) (*Event, error) {
	var ev Event
	if err := (codec.GoJSON{}).Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}
	return &ev, nil
}

// ShouldStart reports whether the event should start a pipeline run:
// a HealthImaging event, an image set reaching ACTIVE, both IDs present.
func (e *Event) ShouldStart() bool {
	return e.Source == eventSource &&
		e.Detail.State == stateActive &&
		e.Detail.DatastoreID != "" &&
		e.Detail.ImageSetID != ""
}

// API is the subset of the SageMaker API used by the Starter.
type API interface {
	StartPipelineExecution(ctx context.Context, params *sagemaker.StartPipelineExecutionInput, optFns ...func(*sagemaker.Options)) (*sagemaker.StartPipelineExecutionOutput, error)
}

// Starter starts pipeline executions for accepted events.
type Starter struct {
	api          API
	pipelineName string
	logger       *slog.Logger
}

// NewStarter creates a Starter for the named pipeline.
func NewStarter(api API, pipelineName string, logger *slog.Logger) *Starter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Starter{api: api, pipelineName: pipelineName, logger: logger}
}

// Start begins a pipeline execution carrying the event's identifiers as
// pipeline parameters and returns the execution ARN.
func (s *Starter) Start(ctx context.Context, ev *Event) (string, error) {
	if s.pipelineName == "" {
		return "", ErrNoPipeline
	}

	out, err := s.api.StartPipelineExecution(ctx, &sagemaker.StartPipelineExecutionInput{
		PipelineName: aws.String(s.pipelineName),
		PipelineParameters: []types.Parameter{
			{Name: aws.String(paramDatastoreID), Value: aws.String(ev.Detail.DatastoreID)},
			{Name: aws.String(paramImageSetID), Value: aws.String(ev.Detail.ImageSetID)},
		},
		PipelineExecutionDescription: aws.String(
			fmt.Sprintf("Triggered by image set %s", ev.Detail.ImageSetID),
		),
	})
	if err != nil {
		return "", fmt.Errorf("start pipeline execution: %w", err)
	}

	arn := aws.ToString(out.PipelineExecutionArn)
	s.logger.Info("started pipeline execution", "arn", arn, "imageSetID", ev.Detail.ImageSetID)
	return arn, nil
}
