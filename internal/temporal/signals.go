package temporal

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// SearchAttribute is a Temporal search attribute key used by Timpani
// to find the workflows that are waiting for specific signals.
const SearchAttribute = "WaitingForSignals"

// MarkSignalReceiver marks the calling workflow as a receiver for the given
// signal names, so that Timpani can find it and send these signals to it.
//
// https://docs.temporal.io/develop/go/observability#visibility
func MarkSignalReceiver(ctx workflow.Context, signals []string) error {
	sa := temporal.NewSearchAttributeKeyKeywordList(SearchAttribute).ValueSet(signals)
	if err := workflow.UpsertTypedSearchAttributes(ctx, sa); err != nil {
		return fmt.Errorf("failed to set workflow search attribute: %w", err)
	}
	return nil
}
