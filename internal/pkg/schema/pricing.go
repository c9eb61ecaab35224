package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/floww-ai/backend/internal/entity"
)

// The model returns pricing either as an ordered array of line items
// (canonical) or as an object mapping item name to a detail object with
// inconsistently cased field names. Both shapes are coalesced here; nothing
// past this function ever sees the map shape.

// Field aliases in preference order; matching is case-insensitive.
var (
	qtyAliases   = []string{"qty", "quantity"}
	unitAliases  = []string{"unit", "units"}
	priceAliases = []string{"price", "unit_price", "unitprice"}
)

type pricingUnion struct {
	list  []rawLineItem
	table map[string]map[string]json.RawMessage
}

type rawLineItem struct {
	Item  string          `json:"item"`
	Qty   json.RawMessage `json:"qty"`
	Unit  string          `json:"unit"`
	Price json.RawMessage `json:"price"`
}

// normalizePricing turns either accepted pricing shape into the canonical
// ordered line-item collection. Missing quantity defaults to 1, missing
// price to 0. Map-shaped payloads are ordered by sorted item name so the
// result is deterministic.
func normalizePricing(raw json.RawMessage, payload string) ([]entity.PricingLineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	union, err := decodePricingUnion(raw)
	if err != nil {
		return nil, &entity.SchemaError{
			Field:   "pricing",
			Reason:  "expected an array of line items or an object of item details",
			Payload: payload,
		}
	}

	if union.list != nil {
		items := make([]entity.PricingLineItem, 0, len(union.list))
		for i, rli := range union.list {
			if strings.TrimSpace(rli.Item) == "" {
				return nil, &entity.SchemaError{
					Field:   fmt.Sprintf("pricing[%d].item", i),
					Reason:  "item name must be a non-empty string",
					Payload: payload,
				}
			}
			qty, err := decodeNumber(rli.Qty, 1, fmt.Sprintf("pricing[%d].qty", i), payload)
			if err != nil {
				return nil, err
			}
			price, err := decodeNumber(rli.Price, 0, fmt.Sprintf("pricing[%d].price", i), payload)
			if err != nil {
				return nil, err
			}
			items = append(items, entity.PricingLineItem{
				Item:  strings.TrimSpace(rli.Item),
				Qty:   int(qty),
				Unit:  rli.Unit,
				Price: price,
			})
		}
		return items, nil
	}

	names := make([]string, 0, len(union.table))
	for name := range union.table {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]entity.PricingLineItem, 0, len(names))
	for _, name := range names {
		detail := union.table[name]
		qty, err := decodeNumber(firstAlias(detail, qtyAliases), 1, fmt.Sprintf("pricing[%s].qty", name), payload)
		if err != nil {
			return nil, err
		}
		price, err := decodeNumber(firstAlias(detail, priceAliases), 0, fmt.Sprintf("pricing[%s].price", name), payload)
		if err != nil {
			return nil, err
		}
		unit, err := decodeString(firstAlias(detail, unitAliases), fmt.Sprintf("pricing[%s].unit", name), payload)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.PricingLineItem{
			Item:  name,
			Qty:   int(qty),
			Unit:  unit,
			Price: price,
		})
	}
	return items, nil
}

func decodePricingUnion(raw json.RawMessage) (*pricingUnion, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []rawLineItem
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		if list == nil {
			list = []rawLineItem{}
		}
		return &pricingUnion{list: list}, nil
	}

	var table map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, err
	}
	return &pricingUnion{table: table}, nil
}

// firstAlias returns the value of the first present alias, matching keys
// case-insensitively in alias preference order. Per alias an exact-case key
// wins; otherwise folded matches are tried in sorted key order so the pick
// never depends on map iteration order.
func firstAlias(detail map[string]json.RawMessage, aliases []string) json.RawMessage {
	keys := make([]string, 0, len(detail))
	for key := range detail {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, alias := range aliases {
		if value, ok := detail[alias]; ok {
			return value
		}
		for _, key := range keys {
			if strings.EqualFold(key, alias) {
				return detail[key]
			}
		}
	}
	return nil
}

// decodeNumber falls back only when the field is absent; a present value of
// the wrong type is a schema failure, not a default.
func decodeNumber(raw json.RawMessage, fallback float64, field, payload string) (float64, error) {
	if absent(raw) {
		return fallback, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, &entity.SchemaError{
			Field:   field,
			Reason:  fmt.Sprintf("expected a number, got %s", strings.TrimSpace(string(raw))),
			Payload: payload,
		}
	}
	return f, nil
}

func decodeString(raw json.RawMessage, field, payload string) (string, error) {
	if absent(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &entity.SchemaError{
			Field:   field,
			Reason:  fmt.Sprintf("expected a string, got %s", strings.TrimSpace(string(raw))),
			Payload: payload,
		}
	}
	return s, nil
}

func absent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
