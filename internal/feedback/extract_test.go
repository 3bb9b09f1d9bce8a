package feedback

import "testing"

func TestExtractUnmodifiedTicket(t *testing.T) {
	t.Parallel()

	body := "<!--c-->\n\nHello world\n\n---\n### 修正前\n<!--c-->\n\n### 修正理由\n<!--c-->"
	ex := Extract(body)

	if ex.FinalDraft == nil || *ex.FinalDraft != "Hello world" {
		t.Fatalf("finalDraft = %v", ex.FinalDraft)
	}
	if ex.WasModified {
		t.Fatal("expected wasModified=false")
	}
	if ex.OriginalDraft != nil {
		t.Fatalf("originalDraft = %q, want nil", *ex.OriginalDraft)
	}
	if ex.FeedbackReason != nil {
		t.Fatalf("feedbackReason = %q, want nil", *ex.FeedbackReason)
	}
}

func TestExtractModifiedTicket(t *testing.T) {
	t.Parallel()

	body := "<!--c-->\n\nHello world\n\n---\n### 修正前\nOld text\n\n### 修正理由\n<!--c-->"
	ex := Extract(body)

	if !ex.WasModified {
		t.Fatal("expected wasModified=true")
	}
	if ex.OriginalDraft == nil || *ex.OriginalDraft != "Old text" {
		t.Fatalf("originalDraft = %v", ex.OriginalDraft)
	}
}

func TestExtractReason(t *testing.T) {
	t.Parallel()

	body := "<!--c-->\n\nFinal text\n\n---\n### 修正前\nOld text\n\n### 修正理由\n<!--c-->\nToo promotional."
	ex := Extract(body)

	if ex.FeedbackReason == nil || *ex.FeedbackReason != "Too promotional." {
		t.Fatalf("feedbackReason = %v", ex.FeedbackReason)
	}
}

func TestExtractNoRegions(t *testing.T) {
	t.Parallel()

	ex := Extract("a plain body with no markers at all")
	if ex.FinalDraft != nil || ex.OriginalDraft != nil || ex.FeedbackReason != nil || ex.WasModified {
		t.Fatalf("expected all-absent extraction, got %+v", ex)
	}
}

func TestExtractMissingDelimiter(t *testing.T) {
	t.Parallel()

	// A comment but no "---" line: the final-content region never closes.
	ex := Extract("<!--c-->\n\nHello world\n")
	if ex.FinalDraft != nil {
		t.Fatalf("finalDraft = %q, want nil", *ex.FinalDraft)
	}
}

func TestExtractOriginalWithoutReasonHeading(t *testing.T) {
	t.Parallel()

	// 修正前 is only a region when 修正理由 closes it further down.
	ex := Extract("<!--c-->\n\nHello\n\n---\n### 修正前\nOld text\n")
	if ex.WasModified || ex.OriginalDraft != nil {
		t.Fatalf("expected absent original section, got %+v", ex)
	}
}
