package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestForContext_CarriesIDs(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	previous := L
	L = &logger{entry: logrus.NewEntry(base)}
	defer func() { L = previous }()

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithRunID(ctx, "Ab12Cd")

	ForContext(ctx).Info("generation started")

	out := buf.String()
	assert.Contains(t, out, "correlation_id="+correlationID)
	assert.Contains(t, out, "run_id=Ab12Cd")
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
}

func TestForContext_EmptyContext(t *testing.T) {
	assert.Same(t, L, ForContext(context.Background()))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestSetup(t *testing.T) {
	defer SetupTestLogger()

	Setup("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Setup("loud")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
