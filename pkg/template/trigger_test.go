package template

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errDatabaseUnreachable = errors.New("database unreachable")

func contextWithRecipe(recipeID string) (*fakeCollection, *TemplateContext) {
	coll := newFakeCollection()
	coll.recipes[recipeID] = true
	return coll, newTestContext(coll)
}

func TestResolveTrigger_NeverWithHistory(t *testing.T) {
	t.Parallel()

	coll, tctx := contextWithRecipe("r1")
	tctx.DB = &fakeDatabase{record: &RequestRecord{Response: Response{StatusCode: 200}, EndTime: time.Now()}}

	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "r1", TriggerOn: Trigger{Kind: TriggerNever}}
	resp, err := resolveTrigger(context.Background(), chain, tctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected stored response, got %+v", resp)
	}
	_ = coll
}

func TestResolveTrigger_NeverWithoutHistory(t *testing.T) {
	t.Parallel()

	_, tctx := contextWithRecipe("r1")
	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "r1", TriggerOn: Trigger{Kind: TriggerNever}}

	_, err := resolveTrigger(context.Background(), chain, tctx)
	if err == nil {
		t.Fatal("expected an error when no history exists and trigger is Never")
	}
}

func TestResolveTrigger_NoHistorySendsWhenEmpty(t *testing.T) {
	t.Parallel()

	_, tctx := contextWithRecipe("r1")
	tctx.HTTP = &fakeHTTP{resp: Response{StatusCode: 201}}
	tctx.Builder = &fakeBuilder{}

	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "r1", TriggerOn: Trigger{Kind: TriggerNoHistory}}
	resp, err := resolveTrigger(context.Background(), chain, tctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected a freshly sent response, got %+v", resp)
	}
}

func TestResolveTrigger_ExpireReusesFreshHistory(t *testing.T) {
	t.Parallel()

	_, tctx := contextWithRecipe("r1")
	tctx.DB = &fakeDatabase{record: &RequestRecord{Response: Response{StatusCode: 200}, EndTime: time.Now()}}
	tctx.HTTP = &fakeHTTP{resp: Response{StatusCode: 500}}
	tctx.Builder = &fakeBuilder{}

	chain := &Chain{
		ID: "c1", Source: ChainSourceRequest, RecipeID: "r1",
		TriggerOn: Trigger{Kind: TriggerExpire, Expire: time.Hour},
	}
	resp, err := resolveTrigger(context.Background(), chain, tctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected reused stored response, got %+v", resp)
	}
}

func TestResolveTrigger_ExpireSendsWhenStale(t *testing.T) {
	t.Parallel()

	_, tctx := contextWithRecipe("r1")
	tctx.DB = &fakeDatabase{record: &RequestRecord{Response: Response{StatusCode: 200}, EndTime: time.Now().Add(-2 * time.Hour)}}
	tctx.HTTP = &fakeHTTP{resp: Response{StatusCode: 201}}
	tctx.Builder = &fakeBuilder{}

	chain := &Chain{
		ID: "c1", Source: ChainSourceRequest, RecipeID: "r1",
		TriggerOn: Trigger{Kind: TriggerExpire, Expire: time.Hour},
	}
	resp, err := resolveTrigger(context.Background(), chain, tctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected a freshly sent response, got %+v", resp)
	}
}

func TestResolveTrigger_AlwaysIgnoresHistory(t *testing.T) {
	t.Parallel()

	_, tctx := contextWithRecipe("r1")
	tctx.DB = &fakeDatabase{record: &RequestRecord{Response: Response{StatusCode: 200}, EndTime: time.Now()}}
	http := &fakeHTTP{resp: Response{StatusCode: 201}}
	tctx.HTTP = http
	tctx.Builder = &fakeBuilder{}

	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "r1", TriggerOn: Trigger{Kind: TriggerAlways}}
	resp, err := resolveTrigger(context.Background(), chain, tctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 || http.calls != 1 {
		t.Errorf("expected a freshly sent response, got %+v (calls=%d)", resp, http.calls)
	}
}

func TestResolveTrigger_AlwaysUnknownRecipe(t *testing.T) {
	t.Parallel()

	tctx := newTestContext(newFakeCollection())
	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "missing", TriggerOn: Trigger{Kind: TriggerAlways}}

	_, err := resolveTrigger(context.Background(), chain, tctx)
	if err == nil {
		t.Fatal("expected an error for an unknown recipe")
	}
}

func assertRecipeUnknown(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error for a deleted recipe")
	}
	if !errors.Is(err, &ChainError{Kind: ChainErrRecipeUnknown}) {
		t.Fatalf("expected ChainErrRecipeUnknown, got %v", err)
	}
}

// Deleted-recipe-with-present-history: the recipe-existence precondition
// must win even when history would otherwise satisfy the branch.
func TestResolveTrigger_NeverDeletedRecipeWithHistory(t *testing.T) {
	t.Parallel()

	coll := newFakeCollection()
	tctx := newTestContext(coll)
	tctx.DB = &fakeDatabase{record: &RequestRecord{Response: Response{StatusCode: 200}, EndTime: time.Now()}}

	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "r1", TriggerOn: Trigger{Kind: TriggerNever}}
	_, err := resolveTrigger(context.Background(), chain, tctx)
	assertRecipeUnknown(t, err)
}

func TestResolveTrigger_NoHistoryDeletedRecipeWithHistory(t *testing.T) {
	t.Parallel()

	coll := newFakeCollection()
	tctx := newTestContext(coll)
	tctx.DB = &fakeDatabase{record: &RequestRecord{Response: Response{StatusCode: 200}, EndTime: time.Now()}}

	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "r1", TriggerOn: Trigger{Kind: TriggerNoHistory}}
	_, err := resolveTrigger(context.Background(), chain, tctx)
	assertRecipeUnknown(t, err)
}

func TestResolveTrigger_ExpireDeletedRecipeWithHistory(t *testing.T) {
	t.Parallel()

	coll := newFakeCollection()
	tctx := newTestContext(coll)
	tctx.DB = &fakeDatabase{record: &RequestRecord{Response: Response{StatusCode: 200}, EndTime: time.Now()}}

	chain := &Chain{
		ID: "c1", Source: ChainSourceRequest, RecipeID: "r1",
		TriggerOn: Trigger{Kind: TriggerExpire, Expire: time.Hour},
	}
	_, err := resolveTrigger(context.Background(), chain, tctx)
	assertRecipeUnknown(t, err)
}

// TriggerAlways must never consult history: a failing database must not
// surface as an error when the trigger never needed it.
func TestResolveTrigger_AlwaysNeverTouchesDatabase(t *testing.T) {
	t.Parallel()

	_, tctx := contextWithRecipe("r1")
	tctx.DB = &fakeDatabase{err: errDatabaseUnreachable}
	tctx.HTTP = &fakeHTTP{resp: Response{StatusCode: 201}}
	tctx.Builder = &fakeBuilder{}

	chain := &Chain{ID: "c1", Source: ChainSourceRequest, RecipeID: "r1", TriggerOn: Trigger{Kind: TriggerAlways}}
	resp, err := resolveTrigger(context.Background(), chain, tctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected a freshly sent response, got %+v", resp)
	}
}
