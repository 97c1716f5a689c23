package controller

import (
	"context"
	"time"

	"github.com/calvinmclean/scalecal/twchart"
)

type twchartClient interface {
	StartCalibration(ctx context.Context, name string, now time.Time) error
	RecordFactor(ctx context.Context, factor float64, now time.Time) error
	Note(ctx context.Context, note string, now time.Time) error
	Done(ctx context.Context) error
}

type noopTWChartClient struct{}

var (
	_ twchartClient = noopTWChartClient{}
	_ twchartClient = &twchart.Client{}
)

// StartCalibration implements twchartClient.
func (n noopTWChartClient) StartCalibration(ctx context.Context, name string, now time.Time) error {
	return nil
}

// RecordFactor implements twchartClient.
func (n noopTWChartClient) RecordFactor(ctx context.Context, factor float64, now time.Time) error {
	return nil
}

// Note implements twchartClient.
func (n noopTWChartClient) Note(ctx context.Context, note string, now time.Time) error {
	return nil
}

// Done implements twchartClient.
func (n noopTWChartClient) Done(ctx context.Context) error {
	return nil
}
