package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// TextReader is a testify mock for service.TextReader.
type TextReader struct {
	mock.Mock
}

func (m *TextReader) ReadImage(ctx context.Context, imageURL string) (string, error) {
	args := m.Called(ctx, imageURL)
	return args.String(0), args.Error(1)
}
