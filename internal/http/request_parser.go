// Package http provides HTTP server and handler implementations.
//
// This file implements the request body and query parsing shared by the
// expense handlers.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/services"
)

// maxBodyBytes bounds a request body. A single expense is far smaller.
const maxBodyBytes = 64 << 10

var errEmptyBody = errors.New("request body is empty")

// flexString accepts a JSON string or number and keeps its text. Amounts
// arrive both ways depending on the client.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a number or string, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// categoryRef accepts a category id ("1") or a category object carrying one
// ({"id":"1","name":"Food",...}). Only the id is kept.
type categoryRef string

func (c *categoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			ID flexString `json:"id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*c = categoryRef(obj.ID)
		return nil
	}
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	*c = categoryRef(s)
	return nil
}

// expenseBody is the accepted shape of a create request. Fields the store
// assigns (id, createdAt) are ignored if a client sends them.
type expenseBody struct {
	Amount      flexString  `json:"amount"`
	Description string      `json:"description"`
	Category    categoryRef `json:"category"`
	Date        string      `json:"date"`
}

func (b expenseBody) input() services.ExpenseInput {
	return services.ExpenseInput{
		Amount:      strings.TrimSpace(string(b.Amount)),
		Description: sanitizeInput(b.Description),
		CategoryID:  strings.TrimSpace(string(b.Category)),
		Date:        strings.TrimSpace(b.Date),
	}
}

// patchBody is the accepted shape of an update request. Absent fields stay
// nil and leave the stored value unchanged.
type patchBody struct {
	Amount      *flexString  `json:"amount"`
	Description *string      `json:"description"`
	Category    *categoryRef `json:"category"`
	Date        *string      `json:"date"`
}

func (b patchBody) input() services.PatchInput {
	var p services.PatchInput
	if b.Amount != nil {
		s := strings.TrimSpace(string(*b.Amount))
		p.Amount = &s
	}
	if b.Description != nil {
		s := sanitizeInput(*b.Description)
		p.Description = &s
	}
	if b.Category != nil {
		s := strings.TrimSpace(string(*b.Category))
		p.CategoryID = &s
	}
	if b.Date != nil {
		s := strings.TrimSpace(*b.Date)
		p.Date = &s
	}
	return p
}

// decodeJSON reads one JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errEmptyBody
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		default:
			return fmt.Errorf("malformed JSON: %w", err)
		}
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}

// parseFilter reads the list filter from ?q= and ?category=.
func parseFilter(query url.Values) core.Filter {
	return core.Filter{
		Query:      stripControl(query.Get("q")),
		CategoryID: strings.TrimSpace(query.Get("category")),
	}
}

// parseConfirm reports whether ?confirm= holds a true value.
func parseConfirm(query url.Values) bool {
	ok, err := strconv.ParseBool(strings.TrimSpace(query.Get("confirm")))
	return err == nil && ok
}
