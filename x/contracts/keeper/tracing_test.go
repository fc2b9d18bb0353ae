package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/contracts/types"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNestedCallsShareOneTrace(t *testing.T) {
	pf := setupScripted(t)
	a, b := pf.spawn(t, nil), pf.spawn(t, nil)
	recorder := recordSpans(t)

	pf.MustExecute(a, keepertest.Addr("sender"), scriptedMsg{
		Name:  "a",
		Calls: []scriptedCall{{Contract: pf.Bech32(b), ID: 7, ReplyOn: types.ReplyOnSuccess, Msg: scriptedMsg{Name: "b"}}},
	})

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	// spans end innermost first
	child, reply, root := spans[0], spans[1], spans[2]
	require.Equal(t, "contracts.execute", child.Name())
	require.Equal(t, "contracts.reply", reply.Name())
	require.Equal(t, "contracts.execute", root.Name())

	require.False(t, root.Parent().IsValid())
	require.Equal(t, root.SpanContext().SpanID(), child.Parent().SpanID())
	require.Equal(t, root.SpanContext().SpanID(), reply.Parent().SpanID())
	require.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())

	depth, ok := spanAttr(child, "call.depth")
	require.True(t, ok)
	require.Equal(t, int64(1), depth.AsInt64())
	id, ok := spanAttr(reply, "reply.id")
	require.True(t, ok)
	require.Equal(t, int64(7), id.AsInt64())
}

func TestFailedCallMarksSpan(t *testing.T) {
	pf := setupScripted(t)
	a := pf.spawn(t, nil)
	recorder := recordSpans(t)

	require.ErrorIs(t, pf.Execute(a, keepertest.Addr("sender"), scriptedMsg{Fail: true}), errScripted)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events())
}
