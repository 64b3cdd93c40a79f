package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Simplici0/toolcost/internal/consumption"
)

func TestObserveEvaluation_CountsByKind(t *testing.T) {
	beforeSolid := testutil.ToFloat64(toolsEvaluated.WithLabelValues(string(consumption.KindSolid)))
	beforeWeb := testutil.ToFloat64(evaluations.WithLabelValues("web"))

	ObserveEvaluation("web", []consumption.Result{
		{Kind: consumption.KindSolid},
		{Kind: consumption.KindSolid},
		{Kind: consumption.KindIndexable},
	})

	assert.InDelta(t, beforeSolid+2, testutil.ToFloat64(toolsEvaluated.WithLabelValues(string(consumption.KindSolid))), 1e-9)
	assert.InDelta(t, beforeWeb+1, testutil.ToFloat64(evaluations.WithLabelValues("web")), 1e-9)
}

func TestSetActiveSessions(t *testing.T) {
	SetActiveSessions(4)
	assert.InDelta(t, 4, testutil.ToFloat64(activeSessions), 1e-9)
}
