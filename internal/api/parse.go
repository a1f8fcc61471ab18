package api

import (
	"strconv"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/readingchat/internal/errors"
	"github.com/diogo/readingchat/internal/models"
)

// ParseChatResponse reads the backend's chat answer. Both answer and
// citations are optional; a null or absent field is treated as missing.
// Citations are read leniently, without validating their shape.
func ParseChatResponse(endpoint string, body []byte) (*models.ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseFailure(endpoint, "response is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return nil, apierrors.NewParseFailure(endpoint, "response body is null")
	}

	resp := &models.ChatResponse{}

	if answer := root.Get("answer"); answer.Exists() && answer.Type != gjson.Null {
		resp.Answer = textOf(answer)
		resp.HasAnswer = true
	}

	if citations := root.Get("citations"); citations.IsArray() {
		citations.ForEach(func(_, value gjson.Result) bool {
			resp.Citations = append(resp.Citations, parseCitation(value))
			return true
		})
	}

	return resp, nil
}

func parseCitation(v gjson.Result) models.Citation {
	c := models.Citation{
		Tag:       optionalText(v.Get("tag")),
		Title:     optionalText(v.Get("title")),
		DocID:     optionalText(v.Get("docId")),
		ChunkID:   optionalText(v.Get("chunkId")),
		SourceURL: optionalText(v.Get("sourceUrl")),
	}

	if page := v.Get("page"); page.Exists() && page.Type != gjson.Null {
		c.Page = textOf(page)
		c.HasPage = true
	}

	return c
}

// ParseHealthResponse reads the health route's {"ok": bool} body
func ParseHealthResponse(endpoint string, body []byte) (*models.HealthStatus, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseFailure(endpoint, "response is not valid JSON")
	}
	return &models.HealthStatus{OK: gjson.GetBytes(body, "ok").Bool()}, nil
}

// detailFromBody extracts a "detail" string from an error body, if any
func detailFromBody(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	switch detail.Type {
	case gjson.String:
		return detail.Str
	case gjson.JSON:
		return detail.Raw
	default:
		return ""
	}
}

func optionalText(r gjson.Result) string {
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	return textOf(r)
}

// textOf renders a JSON value the way it reads as display text: strings
// unquoted, whole numbers without a fraction, everything else raw.
func textOf(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return strconv.FormatFloat(r.Num, 'f', -1, 64)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	default:
		return r.Raw
	}
}
