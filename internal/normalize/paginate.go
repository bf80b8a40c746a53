package normalize

import "github.com/tidwall/gjson"

// Page is a normalized paginated list.
type Page[T any] struct {
	Items       []T     `json:"items"`
	Total       int64   `json:"total"`
	PerPage     int64   `json:"per_page"`
	CurrentPage int64   `json:"current_page"`
	LastPage    int64   `json:"last_page"`
	From        int64   `json:"from"`
	To          int64   `json:"to"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
}

// PageInfo carries pagination metadata extracted from a response body.
type PageInfo struct {
	Total       int64
	PerPage     int64
	CurrentPage int64
	LastPage    int64
	From        int64
	To          int64
	NextPageURL *string
	PrevPageURL *string
}

// ExtractPageInfo reads pagination metadata with the ordered fallback
// the upstream requires: a pagination object, then a meta object, then
// individual top-level fields. Missing page fields default to 1, perPage
// to 15, total and to to the item count; page fields never default to 0.
func ExtractPageInfo(body gjson.Result, itemCount int) PageInfo {
	meta := body
	if node := body.Get("pagination"); node.IsObject() {
		meta = node
	} else if node := body.Get("meta"); node.IsObject() {
		meta = node
	} else if node := body.Get("data"); node.IsObject() && node.Get("current_page").Exists() {
		// Laravel-style paginator nested under data.
		meta = node
	}

	info := PageInfo{
		Total:       Int(meta, "total", int64(itemCount)),
		PerPage:     Int(meta, "per_page", 15),
		CurrentPage: Int(meta, "current_page", 1),
		LastPage:    Int(meta, "last_page", 1),
		From:        Int(meta, "from", 1),
		To:          Int(meta, "to", int64(itemCount)),
		NextPageURL: NullableStr(meta, "next_page_url"),
		PrevPageURL: NullableStr(meta, "prev_page_url"),
	}
	if info.PerPage <= 0 {
		info.PerPage = 15
	}
	if info.CurrentPage <= 0 {
		info.CurrentPage = 1
	}
	if info.LastPage < info.CurrentPage {
		info.LastPage = info.CurrentPage
	}
	return info
}

// DecodePage decodes a list payload into a Page using the per-item
// decoder. The payload may be the item array itself or an envelope whose
// data key holds the array; a missing array degrades to an empty page,
// never to an error.
func DecodePage[T any](o Outcome, decode func(gjson.Result) T) Page[T] {
	items := o.Payload
	if o.HasPayload && items.IsObject() {
		if nested := items.Get("data"); nested.IsArray() {
			items = nested
		}
	}

	var out []T
	if items.IsArray() {
		for _, item := range items.Array() {
			out = append(out, decode(item))
		}
	}
	if out == nil {
		out = []T{}
	}

	info := ExtractPageInfo(o.Body, len(out))
	// The nested envelope sometimes carries its own metadata.
	if o.HasPayload && o.Payload.IsObject() {
		if o.Payload.Get("current_page").Exists() || o.Payload.Get("total").Exists() {
			info = ExtractPageInfo(o.Payload, len(out))
		}
	}

	return Page[T]{
		Items:       out,
		Total:       info.Total,
		PerPage:     info.PerPage,
		CurrentPage: info.CurrentPage,
		LastPage:    info.LastPage,
		From:        info.From,
		To:          info.To,
		NextPageURL: info.NextPageURL,
		PrevPageURL: info.PrevPageURL,
	}
}

// DecodeList decodes a flat (non-paginated) list payload.
func DecodeList[T any](o Outcome, decode func(gjson.Result) T) []T {
	out := []T{}
	if o.Payload.IsArray() {
		for _, item := range o.Payload.Array() {
			out = append(out, decode(item))
		}
	}
	return out
}
