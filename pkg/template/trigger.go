package template

import (
	"context"
	"time"
)

// resolveTrigger implements the Trigger Resolver decision table: given
// a chain's trigger policy and whatever history exists, it decides
// whether to reuse the last stored response or send a new request,
// then returns the resulting Response.
func resolveTrigger(ctx context.Context, chain *Chain, tctx *TemplateContext) (Response, error) {
	if !tctx.Collection.RecipeExists(chain.RecipeID) {
		return Response{}, &ChainError{Kind: ChainErrRecipeUnknown}
	}

	switch chain.TriggerOn.Kind {
	case TriggerNever:
		record, err := lookupHistory(ctx, chain, tctx)
		if err != nil {
			return Response{}, err
		}
		if record == nil {
			return Response{}, &ChainError{Kind: ChainErrNoResponse}
		}
		return record.Response, nil

	case TriggerNoHistory:
		record, err := lookupHistory(ctx, chain, tctx)
		if err != nil {
			return Response{}, err
		}
		if record != nil {
			return record.Response, nil
		}
		return sendNew(ctx, chain, tctx)

	case TriggerExpire:
		record, err := lookupHistory(ctx, chain, tctx)
		if err != nil {
			return Response{}, err
		}
		if record != nil && time.Since(record.EndTime) < chain.TriggerOn.Expire {
			return record.Response, nil
		}
		return sendNew(ctx, chain, tctx)

	case TriggerAlways:
		return sendNew(ctx, chain, tctx)

	default:
		return Response{}, &ChainError{Kind: ChainErrNoResponse}
	}
}

func lookupHistory(ctx context.Context, chain *Chain, tctx *TemplateContext) (*RequestRecord, error) {
	if tctx.DB == nil {
		return nil, nil
	}
	record, err := tctx.DB.GetLastRequest(ctx, tctx.ProfileID, chain.RecipeID)
	if err != nil {
		return nil, &ChainError{Kind: ChainErrDatabase, Cause: err}
	}
	return record, nil
}

// sendNew builds and sends a fresh request for the chain's recipe,
// re-entering the render pipeline for the recipe's own templated
// fields through tctx.Builder.
func sendNew(ctx context.Context, chain *Chain, tctx *TemplateContext) (Response, error) {
	if tctx.Builder == nil || tctx.HTTP == nil {
		return Response{}, &ChainError{
			Kind:  ChainErrTrigger,
			RecipeID: chain.RecipeID,
			Inner: &TriggeredRequestError{Kind: TriggerErrNotAllowed},
		}
	}

	built, err := tctx.Builder.Build(ctx, chain.RecipeID, tctx)
	if err != nil {
		return Response{}, &ChainError{
			Kind:     ChainErrTrigger,
			RecipeID: chain.RecipeID,
			Inner:    &TriggeredRequestError{Kind: TriggerErrBuild, Cause: err},
		}
	}

	resp, err := tctx.HTTP.Send(ctx, built)
	if err != nil {
		return Response{}, &ChainError{
			Kind:     ChainErrTrigger,
			RecipeID: chain.RecipeID,
			Inner:    &TriggeredRequestError{Kind: TriggerErrSend, Cause: err},
		}
	}

	return resp, nil
}
