package normalize

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/upstream"
)

type item struct {
	ID int64
}

func decodeItem(node gjson.Result) item {
	return item{ID: Int(node, "id", 0)}
}

func TestExtractPageInfoFallbackOrder(t *testing.T) {
	// A pagination object wins over meta and top-level fields.
	body := gjson.Parse(`{"pagination":{"total":50,"per_page":10,"current_page":3,"last_page":5},"meta":{"total":1},"total":2}`)
	info := ExtractPageInfo(body, 10)
	if info.Total != 50 || info.PerPage != 10 || info.CurrentPage != 3 || info.LastPage != 5 {
		t.Fatalf("info = %+v", info)
	}

	// Then meta.
	body = gjson.Parse(`{"meta":{"total":30,"current_page":2,"last_page":3,"per_page":"15"},"total":2}`)
	info = ExtractPageInfo(body, 15)
	if info.Total != 30 || info.CurrentPage != 2 || info.PerPage != 15 {
		t.Fatalf("info = %+v", info)
	}

	// Then a Laravel paginator nested under data.
	body = gjson.Parse(`{"data":{"current_page":4,"total":100,"per_page":25,"last_page":4,"data":[]}}`)
	info = ExtractPageInfo(body, 0)
	if info.CurrentPage != 4 || info.Total != 100 || info.PerPage != 25 {
		t.Fatalf("info = %+v", info)
	}

	// Then top-level fields.
	body = gjson.Parse(`{"total":7,"current_page":1,"per_page":15,"last_page":1}`)
	info = ExtractPageInfo(body, 7)
	if info.Total != 7 || info.CurrentPage != 1 {
		t.Fatalf("info = %+v", info)
	}
}

func TestExtractPageInfoDefaults(t *testing.T) {
	info := ExtractPageInfo(gjson.Parse(`{}`), 4)
	if info.CurrentPage != 1 || info.LastPage != 1 {
		t.Fatalf("page fields must default to 1, got %+v", info)
	}
	if info.PerPage != 15 {
		t.Fatalf("per_page default = %d", info.PerPage)
	}
	if info.Total != 4 || info.To != 4 {
		t.Fatalf("total/to should default to item count, got %+v", info)
	}
	if info.From != 1 {
		t.Fatalf("from = %d", info.From)
	}
}

func TestExtractPageInfoNeverZeroPages(t *testing.T) {
	info := ExtractPageInfo(gjson.Parse(`{"pagination":{"current_page":0,"last_page":0,"per_page":0}}`), 0)
	if info.CurrentPage != 1 || info.LastPage != 1 || info.PerPage != 15 {
		t.Fatalf("zero page fields must be corrected, got %+v", info)
	}
}

func TestDecodePageNestedEnvelope(t *testing.T) {
	r := Rules{Key: "item", FailMessage: "Unable to load items"}
	out := Evaluate(upstream.RawResponse{Status: 200, Body: []byte(
		`{"data":{"data":[{"id":1},{"id":2}],"current_page":2,"total":12,"per_page":2,"last_page":6,"next_page_url":"http://x/items?page=3","prev_page_url":null}}`,
	)}, r)
	if !out.Success {
		t.Fatalf("evaluate failed: %v", out.Errors)
	}

	page := DecodePage(out, decodeItem)
	if len(page.Items) != 2 || page.Items[1].ID != 2 {
		t.Fatalf("items = %+v", page.Items)
	}
	if page.CurrentPage != 2 || page.Total != 12 || page.LastPage != 6 {
		t.Fatalf("page = %+v", page)
	}
	if page.NextPageURL == nil || *page.NextPageURL != "http://x/items?page=3" {
		t.Fatalf("next = %v", page.NextPageURL)
	}
	if page.PrevPageURL != nil {
		t.Fatalf("prev = %v, want nil", *page.PrevPageURL)
	}
}

func TestDecodePagePayloadCarriesOwnMetadata(t *testing.T) {
	// Some endpoints put the paginator itself in the payload position.
	r := Rules{Key: "item", FailMessage: "x", DataPaths: []string{"result"}}
	out := Evaluate(upstream.RawResponse{Status: 200, Body: []byte(
		`{"result":{"data":[{"id":9}],"current_page":5,"total":41,"per_page":10,"last_page":5}}`,
	)}, r)
	if !out.Success {
		t.Fatalf("evaluate failed: %v", out.Errors)
	}

	page := DecodePage(out, decodeItem)
	if len(page.Items) != 1 || page.Items[0].ID != 9 {
		t.Fatalf("items = %+v", page.Items)
	}
	if page.CurrentPage != 5 || page.Total != 41 {
		t.Fatalf("page = %+v", page)
	}
}

func TestDecodePageMissingListIsEmptyNotNil(t *testing.T) {
	r := Rules{Key: "item", FailMessage: "x"}
	out := Evaluate(upstream.RawResponse{Status: 200, Body: []byte(`{"data":{}}`)}, r)
	page := DecodePage(out, decodeItem)
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("items = %#v, want empty slice", page.Items)
	}
	if page.CurrentPage != 1 || page.PerPage != 15 {
		t.Fatalf("page = %+v", page)
	}
}

func TestDecodeList(t *testing.T) {
	r := Rules{Key: "item", FailMessage: "x"}
	out := Evaluate(upstream.RawResponse{Status: 200, Body: []byte(`{"data":[{"id":3},{"id":4}]}`)}, r)
	got := DecodeList(out, decodeItem)
	if len(got) != 2 || got[0].ID != 3 {
		t.Fatalf("list = %+v", got)
	}

	out = Evaluate(upstream.RawResponse{Status: 200, Body: []byte(`{"data":{}}`)}, r)
	if got := DecodeList(out, decodeItem); got == nil || len(got) != 0 {
		t.Fatalf("non-array payload should yield empty slice, got %#v", got)
	}
}
