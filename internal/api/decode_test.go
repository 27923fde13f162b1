package api

import "testing"

func TestDecodeJobPage_Envelope(t *testing.T) {
	b := []byte(`{"data":[{"id":1,"title":"Dev"},{"id":2,"title":"SRE"}],"total":57}`)
	page := decodeJobPage(b)
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Total != 57 {
		t.Errorf("total = %d, want 57", page.Total)
	}
	if page.Items[1].Title != "SRE" {
		t.Errorf("items[1].Title = %q", page.Items[1].Title)
	}
}

func TestDecodeJobPage_BareList(t *testing.T) {
	b := []byte(`[{"id":1,"title":"Dev"}]`)
	page := decodeJobPage(b)
	if len(page.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(page.Items))
	}
	if page.Total != 1 {
		t.Errorf("total should fall back to item count, got %d", page.Total)
	}
}

func TestDecodeJobPage_UnknownShapeIsEmptyNotError(t *testing.T) {
	for _, b := range [][]byte{
		[]byte(`{"jobs":"nope"}`),
		[]byte(`"just a string"`),
		[]byte(`42`),
		[]byte(`not even json`),
		nil,
	} {
		page := decodeJobPage(b)
		if len(page.Items) != 0 || page.Total != 0 {
			t.Errorf("decodeJobPage(%q) = %+v, want empty page", b, page)
		}
	}
}

func TestFirstString(t *testing.T) {
	if got := firstString([]byte(`{"cover_letter":"Dear..."}`), "cover_letter", "content"); got != "Dear..." {
		t.Errorf("got %q", got)
	}
	if got := firstString([]byte(`{"content":"Hi"}`), "cover_letter", "content"); got != "Hi" {
		t.Errorf("got %q", got)
	}
	if got := firstString([]byte(`"bare"`), "x"); got != "bare" {
		t.Errorf("got %q", got)
	}
	if got := firstString([]byte(`plain text`), "x"); got != "plain text" {
		t.Errorf("got %q", got)
	}
}

func TestStringList(t *testing.T) {
	if got := stringList([]byte(`{"questions":["a","b"]}`), "questions"); len(got) != 2 || got[0] != "a" {
		t.Errorf("got %v", got)
	}
	if got := stringList([]byte(`["x"]`), "questions"); len(got) != 1 || got[0] != "x" {
		t.Errorf("got %v", got)
	}
	if got := stringList([]byte(`{"other":1}`), "questions"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
