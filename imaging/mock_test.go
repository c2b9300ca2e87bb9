package imaging

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/medicalimaging"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a testify mock of the HealthImaging API subset.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GetImageSetMetadata(ctx context.Context, params *medicalimaging.GetImageSetMetadataInput, optFns ...func(*medicalimaging.Options)) (*medicalimaging.GetImageSetMetadataOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medicalimaging.GetImageSetMetadataOutput), args.Error(1)
}

func (m *MockAPI) GetImageFrame(ctx context.Context, params *medicalimaging.GetImageFrameInput, optFns ...func(*medicalimaging.Options)) (*medicalimaging.GetImageFrameOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medicalimaging.GetImageFrameOutput), args.Error(1)
}
