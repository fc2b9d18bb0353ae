package keeper

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/contracts/types"
)

// TracerName is the instrumentation scope of the contract host spans.
const TracerName = "pawswap/x/" + types.ModuleName

// startSpan opens a span named contracts.<op> as a child of whatever span ctx
// already carries, so nested sub-messages form one trace per transaction.
func startSpan(ctx sdk.Context, op string, contract sdk.AccAddress, depth int) (sdk.Context, trace.Span) {
	goCtx, span := otel.Tracer(TracerName).Start(ctx.Context(), types.ModuleName+"."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("contract.address", contract.String()),
			attribute.Int("call.depth", depth),
			attribute.Int64("block.height", ctx.BlockHeight()),
		),
	)
	return ctx.WithContext(goCtx), span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
