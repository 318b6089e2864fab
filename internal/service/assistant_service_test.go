package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/pkg/logger"
	memrepo "store-assistant-be/internal/repository/memory"
	"store-assistant-be/pkg/dialogue/faq"
	"store-assistant-be/pkg/dialogue/flow"
	"store-assistant-be/pkg/dialogue/intent"
	"store-assistant-be/pkg/dialogue/prompt"
	"store-assistant-be/pkg/dialogue/tools"
	"store-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGate struct {
	result faq.Result
	floor  float64
	calls  int
}

func (f *fakeGate) Answer(_ context.Context, _ string) faq.Result {
	f.calls++
	return f.result
}

func (f *fakeGate) Floor() float64 { return f.floor }

type fakeClassifier struct {
	result *intent.Result
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(_ context.Context, _, _ string) (*intent.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeSlotExtractor struct {
	email string
	err   error
}

func (f *fakeSlotExtractor) ExtractEmail(_ context.Context, _, _ string) (string, error) {
	return f.email, f.err
}

func (f *fakeSlotExtractor) ExtractOrderID(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

type fakeOrderLookup struct {
	orders []*entity.Order
	err    error
}

func (f *fakeOrderLookup) LookupOrders(_ context.Context, _ string) ([]*entity.Order, error) {
	return f.orders, f.err
}

type fakeDispatcher struct {
	result tools.CancelResult
	calls  int
}

func (f *fakeDispatcher) CancelOrder(_ context.Context, _, _ string) tools.CancelResult {
	f.calls++
	return f.result
}

// passthroughFormatter streams the raw message as a single fragment so
// assertions can match on catalog messages directly.
type passthroughFormatter struct{}

func (passthroughFormatter) Stream(_ context.Context, message, _ string) <-chan string {
	out := make(chan string, 1)
	out <- message
	close(out)
	return out
}

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) ChatStream(_ context.Context, _ []llm.Message, _ ...llm.Option) (<-chan string, error) {
	out := make(chan string, 1)
	out <- s.response
	close(out)
	return out, s.err
}

type serviceFixture struct {
	gate       *fakeGate
	classifier *fakeClassifier
	extractor  *fakeSlotExtractor
	dispatcher *fakeDispatcher
	lookup     *fakeOrderLookup
	llm        *stubLLM
	sessions   *memrepo.SessionRepository
	svc        IAssistantService
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		gate:       &fakeGate{floor: 0.7},
		classifier: &fakeClassifier{result: &intent.Result{Intent: intent.IntentChat, Confidence: 0.9}},
		extractor:  &fakeSlotExtractor{},
		dispatcher: &fakeDispatcher{result: tools.CancelResult{Success: true, Message: "order cancelled"}},
		lookup:     &fakeOrderLookup{},
		llm:        &stubLLM{response: "a friendly reply"},
		sessions:   memrepo.NewSessionRepository(time.Minute),
	}
	nop := logger.NewNopLogger()
	flowManager := flow.NewManager(f.extractor, f.dispatcher, nop)
	f.svc = NewAssistantService(
		f.sessions,
		f.gate,
		f.classifier,
		f.extractor,
		flowManager,
		f.lookup,
		passthroughFormatter{},
		f.llm,
		3,
		nop,
	)
	return f
}

func collect(t *testing.T, fragments <-chan string) string {
	t.Helper()
	var b strings.Builder
	timeout := time.After(2 * time.Second)
	for {
		select {
		case fragment, ok := <-fragments:
			if !ok {
				return b.String()
			}
			b.WriteString(fragment)
		case <-timeout:
			t.Fatal("stream did not close")
		}
	}
}

func send(t *testing.T, f *serviceFixture, sessionID, message string) string {
	t.Helper()
	fragments, err := f.svc.Submit(context.Background(), sessionID, message)
	require.NoError(t, err)
	return collect(t, fragments)
}

func TestConfidentRetrievalHitSkipsClassification(t *testing.T) {
	f := newFixture()
	f.gate.result = faq.Result{Found: true, Answer: "We ship worldwide.", Similarity: 0.92}

	response := send(t, f, "s1", "do you ship internationally?")

	assert.Equal(t, "We ship worldwide.", response)
	assert.Zero(t, f.classifier.calls)
}

func TestHitExactlyAtFloorStillClassifies(t *testing.T) {
	f := newFixture()
	f.gate.result = faq.Result{Found: true, Answer: "borderline", Similarity: 0.7}

	send(t, f, "s1", "hmm")

	assert.Equal(t, 1, f.classifier.calls)
}

func TestHitEpsilonAboveFloorShortCircuits(t *testing.T) {
	f := newFixture()
	f.gate.result = faq.Result{Found: true, Answer: "just above", Similarity: 0.7000001}

	response := send(t, f, "s1", "hmm")

	assert.Equal(t, "just above", response)
	assert.Zero(t, f.classifier.calls)
}

func TestMalformedClassifierOutputAsksForClarification(t *testing.T) {
	f := newFixture()
	f.classifier.err = constant.ErrMalformedModelOutput

	response := send(t, f, "s1", "gibberish")

	assert.Equal(t, prompt.MsgClarification, response)
}

func TestTransientClassifierFaultYieldsProcessingError(t *testing.T) {
	f := newFixture()
	f.classifier.err = constant.ErrTransient

	response := send(t, f, "s1", "hello")

	assert.Equal(t, prompt.MsgProcessingError, response)
}

func TestCancelFlowAcrossTurns(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCancelOrder,
		Confidence: 0.95,
		OrderID:    "ORD-123",
	}

	// Turn 1: the order id is seeded from classification, only the email
	// is missing
	first := send(t, f, "s1", "cancel order #ORD-123")
	assert.Contains(t, first, "email")
	assert.Zero(t, f.dispatcher.calls)

	// Turn 2: the active flow owns the turn, no re-classification
	f.extractor.email = "john@email.com"
	second := send(t, f, "s1", "it's john@email.com")
	assert.Equal(t, "order cancelled", second)
	assert.Equal(t, 1, f.dispatcher.calls)
	assert.Equal(t, 1, f.classifier.calls)
}

func TestCancelFlowSeededWithBothSlotsDispatchesImmediately(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCancelOrder,
		Confidence: 0.95,
		Email:      "john@email.com",
		OrderID:    "ORD-123",
	}

	response := send(t, f, "s1", "cancel order ORD-123, I'm john@email.com")

	assert.Equal(t, "order cancelled", response)
	assert.Equal(t, 1, f.dispatcher.calls)
}

func TestCheckOrdersWithoutEmailAsksForIt(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{Intent: intent.IntentCheckOrders, Confidence: 0.9}

	response := send(t, f, "s1", "show me my orders")

	assert.Equal(t, prompt.MsgEmailNeeded, response)
}

func TestCheckOrdersNoMatches(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCheckOrders,
		Confidence: 0.9,
		Email:      "john@email.com",
	}

	response := send(t, f, "s1", "orders for john@email.com")

	assert.Contains(t, response, "john@email.com")
	assert.Contains(t, response, "could not find")
}

func TestCheckOrdersRendersResults(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCheckOrders,
		Confidence: 0.9,
		Email:      "john@email.com",
	}
	f.lookup.orders = []*entity.Order{{OrderID: "ORD-1", Status: "pending", TotalPrice: 25}}
	f.llm.response = "You have one pending order, ORD-1."

	response := send(t, f, "s1", "orders for john@email.com")

	assert.Equal(t, "You have one pending order, ORD-1.", response)
}

func TestCheckOrdersRenderFallsBackToPlainSummary(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCheckOrders,
		Confidence: 0.9,
		Email:      "john@email.com",
	}
	f.lookup.orders = []*entity.Order{{OrderID: "ORD-1", Status: "pending", TotalPrice: 25, CreatedAt: time.Now()}}
	f.llm.err = errors.New("llm down")

	response := send(t, f, "s1", "orders for john@email.com")

	assert.Contains(t, response, "ORD-1")
	assert.Contains(t, response, "pending")
}

func TestLookupFaultYieldsLookupError(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCheckOrders,
		Confidence: 0.9,
		Email:      "john@email.com",
	}
	f.lookup.err = errors.New("db down")

	response := send(t, f, "s1", "orders for john@email.com")

	assert.Equal(t, prompt.MsgLookupError, response)
}

func TestFAQIntentWithoutRetrievalHitIsOutOfScope(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{Intent: intent.IntentFAQ, Confidence: 0.85}

	response := send(t, f, "s1", "what is the meaning of life?")

	assert.Equal(t, prompt.MsgOutOfScope, response)
}

func TestFAQIntentReusesNonConfidentHit(t *testing.T) {
	f := newFixture()
	f.gate.result = faq.Result{Found: true, Answer: "close enough", Similarity: 0.7}
	f.classifier.result = &intent.Result{Intent: intent.IntentFAQ, Confidence: 0.85}

	response := send(t, f, "s1", "return policy?")

	assert.Equal(t, "close enough", response)
}

func TestChatIntentGoesToOpenChat(t *testing.T) {
	f := newFixture()
	f.llm.response = "The RX-78-2 is a classic!"

	response := send(t, f, "s1", "what do you think of the RX-78-2?")

	assert.Equal(t, "The RX-78-2 is a classic!", response)
}

func TestMemoryRecordsBothSidesOfTheTurn(t *testing.T) {
	f := newFixture()
	f.llm.response = "hi there"

	send(t, f, "s1", "hello")

	session, found := f.sessions.Get("s1")
	require.True(t, found)
	turns := session.Memory.Snapshot()
	require.Len(t, turns, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, constant.ChatMessageRoleAssistant, turns[1].Role)
	assert.Equal(t, "hi there", turns[1].Content)
}

func TestResetClearsMemoryAndFlow(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCancelOrder,
		Confidence: 0.95,
		OrderID:    "ORD-123",
	}
	send(t, f, "s1", "cancel order ORD-123")

	f.svc.Reset("s1")

	session, found := f.sessions.Get("s1")
	require.True(t, found)
	assert.Zero(t, session.Memory.Len())
	assert.False(t, session.Flow.IsCancelFlow())
}

func TestResetUnknownSessionIsNoOp(t *testing.T) {
	f := newFixture()
	f.svc.Reset("never-seen")
}

func TestSessionsAreIsolated(t *testing.T) {
	f := newFixture()
	f.classifier.result = &intent.Result{
		Intent:     intent.IntentCancelOrder,
		Confidence: 0.95,
		OrderID:    "ORD-123",
	}

	send(t, f, "s1", "cancel order ORD-123")

	s1, _ := f.sessions.Get("s1")
	assert.True(t, s1.Flow.IsCancelFlow())

	// A second session sees no flow from the first
	f.classifier.result = &intent.Result{Intent: intent.IntentChat, Confidence: 0.9}
	send(t, f, "s2", "hello")

	s2, _ := f.sessions.Get("s2")
	assert.False(t, s2.Flow.IsCancelFlow())
	assert.True(t, s1.Flow.IsCancelFlow())
}
