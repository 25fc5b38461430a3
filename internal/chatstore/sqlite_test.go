package chatstore

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/joelkehle/proposal-desk/internal/review"
)

func newSQLiteTest(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chats.db")
	s, err := NewSQLiteStore(path, Config{Clock: testClock()})
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func reopen(t *testing.T, s *SQLiteStore, path string) *SQLiteStore {
	t.Helper()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	out, err := NewSQLiteStore(path, Config{Clock: testClock()})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { out.Close() })
	return out
}

func TestSQLiteSeedsEmptyDatabase(t *testing.T) {
	s, _ := newSQLiteTest(t)
	convs := s.ListConversations(SeedUserID)
	if len(convs) != 2 {
		t.Fatalf("expected 2 seeded conversations, got %d", len(convs))
	}
	if convs[0].Title != "Quantum Computing Proposal" || convs[1].Title != "AI in Healthcare Initiative" {
		t.Fatalf("unexpected seed titles: %q, %q", convs[0].Title, convs[1].Title)
	}

	_, msgs, err := s.GetConversation("chat-1")
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("seed conversation should have a full exchange, got %d messages", len(msgs))
	}
	rev := msgs[1].Content.Review
	if rev == nil || rev.OverallScore != 72 {
		t.Fatalf("unexpected seed review: %+v", rev)
	}
	if rev.Verdict != "Accepted, Interview Recommended" {
		t.Fatalf("seed verdict = %q", rev.Verdict)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	s, path := newSQLiteTest(t)
	mustCreate(t, s, "c1")
	m, err := s.StageMessage(StageMessageInput{ConversationID: "c1", MessageID: "m1", Role: RoleUser, Content: Content{Text: "my proposal"}})
	if err != nil {
		t.Fatalf("StageMessage: %v", err)
	}
	if err := s.ConfirmMessage("c1", m.MessageID); err != nil {
		t.Fatalf("ConfirmMessage: %v", err)
	}
	if err := s.RenameConversation("c1", "Renamed"); err != nil {
		t.Fatalf("RenameConversation: %v", err)
	}

	s = reopen(t, s, path)
	c, msgs, err := s.GetConversation("c1")
	if err != nil {
		t.Fatalf("GetConversation after reopen: %v", err)
	}
	if c.Title != "Renamed" {
		t.Fatalf("title = %q", c.Title)
	}
	if len(msgs) != 1 || msgs[0].Content.Text != "my proposal" {
		t.Fatalf("messages did not survive reopen: %+v", msgs)
	}
	if msgs[0].Staged {
		t.Fatal("persisted message reloaded as staged")
	}
}

func TestSQLiteStagedMessageNotPersisted(t *testing.T) {
	s, path := newSQLiteTest(t)
	mustCreate(t, s, "c1")
	if _, err := s.StageMessage(StageMessageInput{ConversationID: "c1", MessageID: "m1", Role: RoleUser, Content: Content{Text: "tentative"}}); err != nil {
		t.Fatalf("StageMessage: %v", err)
	}

	s = reopen(t, s, path)
	_, msgs, err := s.GetConversation("c1")
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("staged message should not survive a restart, got %d", len(msgs))
	}
}

func TestSQLiteReviewContentRoundTrip(t *testing.T) {
	s, path := newSQLiteTest(t)
	mustCreate(t, s, "c1")

	rev := review.Review{
		ProjectSummary:        "Builds a 12-qubit superconducting processor.",
		AlignmentWithGoals:    "Strong alignment with the program's research goals.",
		TeamExperience:        "PhD-level quantum physics team.",
		MilestoneFeasibility:  "Ambitious but plausible milestones.",
		OriginalityOfIdea:     "7/10 (Fairly Original) - Novel architecture despite a competitive field.",
		BudgetJustification:   "Budget is detailed but lacks vendor quotes.",
		EthicalConsiderations: "Briefly addressed; acceptable for this stage.",
		ThingsToClarify:       "1. Provide vendor quotes.\n2. Clarify team roles.",
		FinalReviewComment:    "Promising proposal with refinable budget details.",
		OverallScore:          72,
	}
	rev.Verdict = review.Classify(rev.OverallScore)

	for _, in := range []StageMessageInput{
		{ConversationID: "c1", MessageID: "m1", Role: RoleUser, Content: Content{Text: "my proposal"}},
		{ConversationID: "c1", MessageID: "m2", Role: RoleAssistant, Content: Content{Review: &rev}},
	} {
		if _, err := s.StageMessage(in); err != nil {
			t.Fatalf("StageMessage: %v", err)
		}
		if err := s.ConfirmMessage("c1", in.MessageID); err != nil {
			t.Fatalf("ConfirmMessage: %v", err)
		}
	}

	s = reopen(t, s, path)
	_, msgs, err := s.GetConversation("c1")
	if err != nil {
		t.Fatalf("GetConversation after reopen: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages after reopen, got %d", len(msgs))
	}
	got := msgs[1].Content.Review
	if got == nil {
		t.Fatal("assistant message reloaded without its structured review")
	}
	if !reflect.DeepEqual(*got, rev) {
		t.Fatalf("review changed across restart:\n got %+v\nwant %+v", *got, rev)
	}
	if msgs[1].Content.Text != "" {
		t.Fatalf("assistant message grew stray text content %q", msgs[1].Content.Text)
	}
}

func TestSQLiteConfirmDeleteRaceDoesNotResurrect(t *testing.T) {
	s, path := newSQLiteTest(t)

	// A confirm racing a delete must never write the deleted conversation's
	// rows back, whichever side reaches the database first.
	const rounds = 200
	for i := 0; i < rounds; i++ {
		id := fmt.Sprintf("race-%d", i)
		mustCreate(t, s, id)
		m, err := s.StageMessage(StageMessageInput{ConversationID: id, Role: RoleUser, Content: Content{Text: "in flight"}})
		if err != nil {
			t.Fatalf("StageMessage: %v", err)
		}
		done := make(chan struct{})
		go func() {
			// Losing the race to the delete surfaces as not_found, which
			// callers treat as the result being discarded.
			_ = s.ConfirmMessage(id, m.MessageID)
			close(done)
		}()
		if err := s.DeleteConversation(id); err != nil {
			t.Fatalf("DeleteConversation: %v", err)
		}
		<-done
	}

	s = reopen(t, s, path)
	for i := 0; i < rounds; i++ {
		id := fmt.Sprintf("race-%d", i)
		if _, _, err := s.GetConversation(id); err == nil {
			t.Fatalf("deleted conversation %s resurrected after restart", id)
		}
	}
}

func TestSQLiteDeletePersists(t *testing.T) {
	s, path := newSQLiteTest(t)
	if err := s.DeleteConversation("chat-1"); err != nil {
		t.Fatalf("DeleteConversation: %v", err)
	}

	s = reopen(t, s, path)
	if _, _, err := s.GetConversation("chat-1"); err == nil {
		t.Fatal("deleted conversation came back after reopen")
	}
	// One seeded conversation remains, so reopening must not reseed.
	if got := len(s.ListConversations("")); got != 1 {
		t.Fatalf("expected 1 conversation after delete, got %d", got)
	}
}
