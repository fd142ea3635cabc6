package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/mocks"
	"github.com/truckhire/truckhire-server/internal/testutil"
)

func TestLicense_Read(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	storage := &mocks.Storage{}
	reader := &mocks.TextReader{}

	storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "licenses/"+userID.String()+"/")
	}), mock.Anything, int64(20), "image/jpeg").Return(nil).Once()
	storage.On("URL", ctx, mock.AnythingOfType("string"), ocrURLExpiry).
		Return("https://storage/licenses/scan.jpg", nil).Once()
	reader.On("ReadImage", ctx, "https://storage/licenses/scan.jpg").
		Return("LICENSE NO 12345\nEXPIRES 2027-01-01", nil).Once()

	svc := NewLicense(storage, reader, testutil.MakeNoopLogger())

	scan, err := svc.Read(ctx, userID, strings.NewReader("jpeg-bytes"), 20, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, []string{"LICENSE NO 12345", "EXPIRES 2027-01-01"}, scan.Lines)
}

func TestLicense_Read_UpstreamFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	storage := &mocks.Storage{}
	reader := &mocks.TextReader{}

	storage.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	storage.On("URL", ctx, mock.Anything, ocrURLExpiry).Return("https://storage/x", nil).Once()
	reader.On("ReadImage", ctx, "https://storage/x").Return("", assert.AnError).Once()

	svc := NewLicense(storage, reader, testutil.MakeNoopLogger())

	_, err := svc.Read(ctx, userID, strings.NewReader("x"), 1, "image/jpeg")
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream_failed", apiErr.Code)
}
